/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsigscmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/jsonld"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/jsonld/remote"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/keyresolver"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/jsigs"
)

const (
	// log level flag.
	logLevelFlagName  = "log-level"
	logLevelEnvKey    = "JSIGS_LOG_LEVEL"
	logLevelFlagUsage = "Log level." +
		" Possible values [INFO] [DEBUG] [ERROR] [WARNING] [CRITICAL] . Defaults to INFO if not set." +
		" Alternatively, this can be set with the following environment variable: " + logLevelEnvKey

	// allow remote flag.
	allowRemoteFlagName  = "allow-remote"
	allowRemoteEnvKey    = "JSIGS_ALLOW_REMOTE"
	allowRemoteFlagUsage = "Fetch unknown JSON-LD contexts and key documents over HTTP(S)." +
		" Possible values [true] [false]. Defaults to false if not set." +
		" Alternatively, this can be set with the following environment variable: " + allowRemoteEnvKey

	// input flag.
	inputFlagName      = "input"
	inputEnvKey        = "JSIGS_INPUT"
	inputFlagShorthand = "i"
	inputFlagUsage     = "Path of the JSON-LD document. Use - to read from standard input." +
		" Alternatively, this can be set with the following environment variable: " + inputEnvKey

	stdinPath = "-"
)

var logger = log.New("aries-framework/jsigs/cmd")

func createCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(logLevelFlagName, "", "", logLevelFlagUsage)
	cmd.Flags().StringP(allowRemoteFlagName, "", "", allowRemoteFlagUsage)
}

func getUserSetVar(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		return value, nil
	}

	return "", errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}

func getBoolVar(cmd *cobra.Command, flagName, envKey string) (bool, error) {
	value, err := getUserSetVar(cmd, flagName, envKey, true)
	if err != nil {
		return false, err
	}

	if value == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %w", flagName, err)
	}

	return b, nil
}

func setLogLevel(logLevel string) error {
	if logLevel != "" {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("failed to parse log level '%s' : %w", logLevel, err)
		}

		log.SetLevel("", level)

		logger.Infof("logger level set to %s", logLevel)
	}

	return nil
}

// createClient builds the signature client. Contexts and key documents are only fetched from the
// network when allowRemote is set.
func createClient(cmd *cobra.Command) (*jsigs.Client, error) {
	logLevel, err := getUserSetVar(cmd, logLevelFlagName, logLevelEnvKey, true)
	if err != nil {
		return nil, err
	}

	if err = setLogLevel(logLevel); err != nil {
		return nil, err
	}

	allowRemote, err := getBoolVar(cmd, allowRemoteFlagName, allowRemoteEnvKey)
	if err != nil {
		return nil, err
	}

	if !allowRemote {
		return jsigs.New()
	}

	loader := remote.New()

	contextLoader, err := jsonld.NewDefaultDocumentLoader(jsonld.WithRemoteDocumentLoader(loader))
	if err != nil {
		return nil, fmt.Errorf("create context loader: %w", err)
	}

	return jsigs.New(
		jsigs.WithContextLoader(contextLoader),
		jsigs.WithKeyLoader(keyresolver.DocumentLoaderFunc(loader.FetchDocument)),
	)
}

func readJSONFile(cmd *cobra.Command, path string) (map[string]interface{}, error) {
	var (
		data []byte
		err  error
	)

	if path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path) //nolint:gosec
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc map[string]interface{}

	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return doc, nil
}

func readOptionalJSONFile(cmd *cobra.Command, flagName, envKey string) (map[string]interface{}, error) {
	path, err := getUserSetVar(cmd, flagName, envKey, true)
	if err != nil || path == "" {
		return nil, err
	}

	return readJSONFile(cmd, path)
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
