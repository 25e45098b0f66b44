// internal/cli/index.go
package cli

import (
	"kreads-core/graph"
	"kreads-core/kmer"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	var (
		k   int
		out string
	)
	cmd := &cobra.Command{
		Use:   "index -k <K> -o <out.kset> <in.fa|fq> [...]",
		Short: "build a k-mer set from sequence files",
		Long: `Build the k-mer set a filter run queries. Every k-mer of every
unambiguous run in the input sequences is stored under its canonical
(strand-independent) key.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return usageErrf("please specify at least one sequence file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !kmer.ValidK(k) {
				return usageErrf("invalid kmer length %d (need odd, 1..%d)", k, kmer.MaxK)
			}
			if out == "" {
				return usageErrf("please specify an output file (-o)")
			}
			x, err := graph.Build(k, args)
			if err != nil {
				return err
			}
			if err := x.Save(out); err != nil {
				return err
			}
			log.Infof("saved %d kmers (k=%d) to %s", x.Len(), k, out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "kmer", "k", 0, "k-mer length (odd, 1..31)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output k-mer set file")
	return cmd
}
