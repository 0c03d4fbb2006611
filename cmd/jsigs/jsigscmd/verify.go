/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsigscmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/jsigs"
)

const (
	publicKeyFlagName  = "public-key"
	publicKeyEnvKey    = "JSIGS_PUBLIC_KEY"
	publicKeyFlagUsage = "Path of the key document used instead of resolving the creator (optional)." +
		" Alternatively, this can be set with the following environment variable: " + publicKeyEnvKey

	publicKeyOwnerFlagName  = "public-key-owner"
	publicKeyOwnerEnvKey    = "JSIGS_PUBLIC_KEY_OWNER"
	publicKeyOwnerFlagUsage = "Path of the key owner document used instead of resolving the key owner (optional)." +
		" Alternatively, this can be set with the following environment variable: " + publicKeyOwnerEnvKey

	timeoutFlagName  = "timeout"
	timeoutEnvKey    = "JSIGS_TIMEOUT"
	timeoutFlagUsage = "Maximum duration of the verification, for example 30s. No limit if not set." +
		" Alternatively, this can be set with the following environment variable: " + timeoutEnvKey
)

var errNotVerified = errors.New("signature verification failed")

type verifyResult struct {
	Verified bool `json:"verified"`
}

// VerifyCmd returns the Cobra verify command.
func VerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signed JSON-LD document",
		Long:  `Verify the signature of a JSON-LD document. Exits with an error when the signature is not valid`,
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

			opts, err := getVerifyOptions(cmd)
			if err != nil {
				return err
			}

			ctx, cancel, err := verifyContext(cmd)
			if err != nil {
				return err
			}

			defer cancel()

			verified, err := client.Verify(ctx, doc, opts)
			if err != nil {
				return fmt.Errorf("verify document: %w", err)
			}

			if err = writeJSON(cmd, &verifyResult{Verified: verified}); err != nil {
				return err
			}

			if !verified {
				return errNotVerified
			}

			return nil
		},
	}

	createVerifyFlags(cmd)

	return cmd
}

func createVerifyFlags(cmd *cobra.Command) {
	createCommonFlags(cmd)
	cmd.Flags().StringP(inputFlagName, inputFlagShorthand, "", inputFlagUsage)
	cmd.Flags().StringP(publicKeyFlagName, "", "", publicKeyFlagUsage)
	cmd.Flags().StringP(publicKeyOwnerFlagName, "", "", publicKeyOwnerFlagUsage)
	cmd.Flags().StringP(timeoutFlagName, "", "", timeoutFlagUsage)
}

func getVerifyOptions(cmd *cobra.Command) (*jsigs.VerifyOptions, error) {
	publicKey, err := readOptionalJSONFile(cmd, publicKeyFlagName, publicKeyEnvKey)
	if err != nil {
		return nil, err
	}

	owner, err := readOptionalJSONFile(cmd, publicKeyOwnerFlagName, publicKeyOwnerEnvKey)
	if err != nil {
		return nil, err
	}

	return &jsigs.VerifyOptions{PublicKey: publicKey, PublicKeyOwner: owner}, nil
}

func verifyContext(cmd *cobra.Command) (context.Context, context.CancelFunc, error) {
	timeout, err := getUserSetVar(cmd, timeoutFlagName, timeoutEnvKey, true)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if timeout == "" {
		ctx, cancel := context.WithCancel(ctx)

		return ctx, cancel, nil
	}

	d, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid value for %s: %w", timeoutFlagName, err)
	}

	ctx, cancel := context.WithTimeout(ctx, d)

	return ctx, cancel, nil
}
