/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jsigs (JSON-LD Signatures CLI and REST Server).
//
// Terms Of Service:
//
//	Schemes: https
//	Version: 0.1.0
//	License: SPDX-License-Identifier: Apache-2.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package main

import (
	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/jsigs/cmd/jsigs/jsigscmd"
)

// This is an application which signs and verifies JSON-LD documents, or serves the same operations over REST.
func main() {
	rootCmd := &cobra.Command{
		Use: "jsigs",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	logger := log.New("aries-framework/jsigs")

	rootCmd.AddCommand(jsigscmd.SignCmd(), jsigscmd.VerifyCmd(), jsigscmd.ServeCmd(&jsigscmd.HTTPServer{}))

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("Failed to run jsigs: %s", err)
	}
}
