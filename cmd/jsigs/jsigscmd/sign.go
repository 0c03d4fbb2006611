/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsigscmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/jsigs"
)

const (
	algorithmFlagName      = "algorithm"
	algorithmEnvKey        = "JSIGS_ALGORITHM"
	algorithmFlagShorthand = "a"
	algorithmFlagUsage     = "Signature suite to sign with." +
		" Possible values [GraphSignature2012] [LinkedDataSignature2015] [EcdsaKoblitzSignature2016]" +
		" [RsaSignature2017]." +
		" Alternatively, this can be set with the following environment variable: " + algorithmEnvKey

	creatorFlagName      = "creator"
	creatorEnvKey        = "JSIGS_CREATOR"
	creatorFlagShorthand = "c"
	creatorFlagUsage     = "URI of the signing key." +
		" Alternatively, this can be set with the following environment variable: " + creatorEnvKey

	privateKeyFileFlagName  = "private-key-file"
	privateKeyFileEnvKey    = "JSIGS_PRIVATE_KEY_FILE"
	privateKeyFileFlagUsage = "Path of the PEM encoded RSA private key." +
		" Alternatively, this can be set with the following environment variable: " + privateKeyFileEnvKey

	privateKeyWifFlagName  = "private-key-wif"
	privateKeyWifEnvKey    = "JSIGS_PRIVATE_KEY_WIF" // nolint:gosec
	privateKeyWifFlagUsage = "WIF encoded secp256k1 private key for EcdsaKoblitzSignature2016." +
		" Alternatively, this can be set with the following environment variable: " + privateKeyWifEnvKey

	createdFlagName  = "created"
	createdEnvKey    = "JSIGS_CREATED"
	createdFlagUsage = "Signature creation time in RFC3339 format. Defaults to the current time." +
		" Alternatively, this can be set with the following environment variable: " + createdEnvKey

	domainFlagName  = "domain"
	domainEnvKey    = "JSIGS_DOMAIN"
	domainFlagUsage = "Domain the signature is restricted to (optional)." +
		" Alternatively, this can be set with the following environment variable: " + domainEnvKey

	nonceFlagName  = "nonce"
	nonceEnvKey    = "JSIGS_NONCE"
	nonceFlagUsage = "Nonce added to the signature (optional)." +
		" Alternatively, this can be set with the following environment variable: " + nonceEnvKey
)

// SignCmd returns the Cobra sign command.
func SignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a JSON-LD document",
		Long:  `Sign a JSON-LD document and write the signed document to standard output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			input, err := getUserSetVar(cmd, inputFlagName, inputEnvKey, false)
			if err != nil {
				return err
			}

			doc, err := readJSONFile(cmd, input)
			if err != nil {
				return err
			}

			opts, err := getSignOptions(cmd)
			if err != nil {
				return err
			}

			signed, err := client.Sign(doc, opts)
			if err != nil {
				return fmt.Errorf("sign document: %w", err)
			}

			return writeJSON(cmd, signed)
		},
	}

	createSignFlags(cmd)

	return cmd
}

func createSignFlags(cmd *cobra.Command) {
	createCommonFlags(cmd)
	cmd.Flags().StringP(inputFlagName, inputFlagShorthand, "", inputFlagUsage)
	cmd.Flags().StringP(algorithmFlagName, algorithmFlagShorthand, "", algorithmFlagUsage)
	cmd.Flags().StringP(creatorFlagName, creatorFlagShorthand, "", creatorFlagUsage)
	cmd.Flags().StringP(privateKeyFileFlagName, "", "", privateKeyFileFlagUsage)
	cmd.Flags().StringP(privateKeyWifFlagName, "", "", privateKeyWifFlagUsage)
	cmd.Flags().StringP(createdFlagName, "", "", createdFlagUsage)
	cmd.Flags().StringP(domainFlagName, "", "", domainFlagUsage)
	cmd.Flags().StringP(nonceFlagName, "", "", nonceFlagUsage)
}

func getSignOptions(cmd *cobra.Command) (*jsigs.SignOptions, error) {
	opts := &jsigs.SignOptions{}

	required := []struct {
		flagName, envKey string
		value            *string
	}{
		{algorithmFlagName, algorithmEnvKey, &opts.Algorithm},
		{creatorFlagName, creatorEnvKey, &opts.Creator},
	}

	for _, r := range required {
		value, err := getUserSetVar(cmd, r.flagName, r.envKey, false)
		if err != nil {
			return nil, err
		}

		*r.value = value
	}

	optional := []struct {
		flagName, envKey string
		value            *string
	}{
		{privateKeyWifFlagName, privateKeyWifEnvKey, &opts.PrivateKeyWif},
		{domainFlagName, domainEnvKey, &opts.Domain},
		{nonceFlagName, nonceEnvKey, &opts.Nonce},
	}

	for _, o := range optional {
		value, err := getUserSetVar(cmd, o.flagName, o.envKey, true)
		if err != nil {
			return nil, err
		}

		*o.value = value
	}

	keyFile, err := getUserSetVar(cmd, privateKeyFileFlagName, privateKeyFileEnvKey, true)
	if err != nil {
		return nil, err
	}

	if keyFile != "" {
		pem, err := os.ReadFile(keyFile) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("read private key: %w", err)
		}

		opts.PrivateKeyPem = string(pem)
	}

	created, err := getUserSetVar(cmd, createdFlagName, createdEnvKey, true)
	if err != nil {
		return nil, err
	}

	if created != "" {
		t, err := time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", createdFlagName, err)
		}

		opts.Created = &t
	}

	return opts, nil
}
