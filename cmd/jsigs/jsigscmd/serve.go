/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsigscmd

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/jsigs"
)

const (
	// api host flag.
	hostFlagName      = "api-host"
	hostEnvKey        = "JSIGS_API_HOST"
	hostFlagShorthand = "a"
	hostFlagUsage     = "Host Name:Port." +
		" Alternatively, this can be set with the following environment variable: " + hostEnvKey

	// api token flag.
	tokenFlagName      = "api-token"
	tokenEnvKey        = "JSIGS_API_TOKEN" // nolint:gosec
	tokenFlagShorthand = "t"
	tokenFlagUsage     = "Check for bearer token in the authorization header (optional)." +
		" Alternatively, this can be set with the following environment variable: " + tokenEnvKey

	tlsCertFileFlagName  = "tls-cert-file"
	tlsCertFileEnvKey    = "JSIGS_TLS_CERT_FILE"
	tlsCertFileFlagUsage = "tls certificate file." +
		" Alternatively, this can be set with the following environment variable: " + tlsCertFileEnvKey

	tlsKeyFileFlagName  = "tls-key-file"
	tlsKeyFileEnvKey    = "JSIGS_TLS_KEY_FILE"
	tlsKeyFileFlagUsage = "tls key file." +
		" Alternatively, this can be set with the following environment variable: " + tlsKeyFileEnvKey
)

var errMissingHost = errors.New("host not provided")

type server interface {
	ListenAndServe(host string, router http.Handler, certFile, keyFile string) error
}

// HTTPServer represents an actual server implementation.
type HTTPServer struct{}

// ListenAndServe starts the server using the standard Go HTTP server implementation.
func (s *HTTPServer) ListenAndServe(host string, router http.Handler, certFile, keyFile string) error {
	if certFile != "" && keyFile != "" {
		return http.ListenAndServeTLS(host, certFile, keyFile, router) //nolint:gosec
	}

	return http.ListenAndServe(host, router) //nolint:gosec
}

type serverParameters struct {
	server                  server
	client                  *jsigs.Client
	host, token             string
	tlsCertFile, tlsKeyFile string
}

// ServeCmd returns the Cobra serve command.
func ServeCmd(srv server) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST server",
		Long:  `Start a REST server exposing the sign and verify operations`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			host, err := getUserSetVar(cmd, hostFlagName, hostEnvKey, false)
			if err != nil {
				return err
			}

			token, err := getUserSetVar(cmd, tokenFlagName, tokenEnvKey, true)
			if err != nil {
				return err
			}

			tlsCertFile, err := getUserSetVar(cmd, tlsCertFileFlagName, tlsCertFileEnvKey, true)
			if err != nil {
				return err
			}

			tlsKeyFile, err := getUserSetVar(cmd, tlsKeyFileFlagName, tlsKeyFileEnvKey, true)
			if err != nil {
				return err
			}

			return startServer(&serverParameters{
				server:      srv,
				client:      client,
				host:        host,
				token:       token,
				tlsCertFile: tlsCertFile,
				tlsKeyFile:  tlsKeyFile,
			})
		},
	}

	createServeFlags(cmd)

	return cmd
}

func createServeFlags(cmd *cobra.Command) {
	createCommonFlags(cmd)
	cmd.Flags().StringP(hostFlagName, hostFlagShorthand, "", hostFlagUsage)
	cmd.Flags().StringP(tokenFlagName, tokenFlagShorthand, "", tokenFlagUsage)
	cmd.Flags().StringP(tlsCertFileFlagName, "", "", tlsCertFileFlagUsage)
	cmd.Flags().StringP(tlsKeyFileFlagName, "", "", tlsKeyFileFlagUsage)
}

func validateAuthorizationBearerToken(w http.ResponseWriter, r *http.Request, token string) bool {
	actHdr := r.Header.Get("Authorization")
	expHdr := "Bearer " + token

	if subtle.ConstantTimeCompare([]byte(actHdr), []byte(expHdr)) != 1 {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Unauthorised.\n")) // nolint:gosec,errcheck

		return false
	}

	return true
}

func authorizationMiddleware(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validateAuthorizationBearerToken(w, r, token) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

func newRouter(parameters *serverParameters) (http.Handler, error) {
	handlers, err := controller.GetRESTHandlers(parameters.client)
	if err != nil {
		return nil, fmt.Errorf("failed to get rest service api: %w", err)
	}

	router := mux.NewRouter()

	if parameters.token != "" {
		router.Use(authorizationMiddleware(parameters.token))
	}

	for _, handler := range handlers {
		router.HandleFunc(handler.Path(), handler.Handle()).Methods(handler.Method())
	}

	return cors.New(
		cors.Options{
			AllowedMethods: []string{http.MethodPost, http.MethodHead},
			AllowedHeaders: []string{
				"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization", controller.RequestIDHeader,
			},
			ExposedHeaders: []string{controller.RequestIDHeader},
		},
	).Handler(router), nil
}

func startServer(parameters *serverParameters) error {
	if parameters.host == "" {
		return errMissingHost
	}

	handler, err := newRouter(parameters)
	if err != nil {
		return fmt.Errorf("failed to start jsigs rest on port [%s]: %w", parameters.host, err)
	}

	logger.Infof("Starting jsigs rest on host [%s]", parameters.host)

	err = parameters.server.ListenAndServe(parameters.host, handler, parameters.tlsCertFile, parameters.tlsKeyFile)
	if err != nil {
		return fmt.Errorf("failed to start jsigs rest on port [%s], cause:  %w", parameters.host, err)
	}

	return nil
}
