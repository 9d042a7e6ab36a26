package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bibbank/bib/services/realcare-service/pkg/tlsutil"
)

func newCertsCmd() *cobra.Command {
	var (
		hosts    []string
		outDir   string
		validFor time.Duration
	)
	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Generate a development CA and gRPC server certificate",
		Long: `Generate a development CA and gRPC server certificate.

Point GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE at the generated server.pem and
server-key.pem to serve gRPC over TLS; clients trust ca.pem.`,
		Example: `  realcarectl certs --hosts localhost,realcare.internal --out ./certs`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := tlsutil.GenerateSelfSigned(hosts, outDir, validFor)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "GRPC_TLS_CERT_FILE=%s\nGRPC_TLS_KEY_FILE=%s\nCA=%s\n",
				b.CertFile, b.KeyFile, b.CAFile)
			return err
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&hosts, "hosts", []string{"localhost", "127.0.0.1"}, "DNS names or IPs the certificate is valid for")
	f.StringVar(&outDir, "out", "certs", "output directory")
	f.DurationVar(&validFor, "valid-for", 365*24*time.Hour, "certificate lifetime")
	return cmd
}
