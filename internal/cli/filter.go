// internal/cli/filter.go
package cli

import (
	"kreads-core/graph"
	"kreads/internal/filter"

	"github.com/spf13/cobra"
)

type filterOptions struct {
	seq     []string // -1 <in>:<out_base>
	seq2    []string // -2 <in1>:<in2>:<out_base>
	seqi    []string // -i <in>:<out_base>
	fasta   bool
	fastq   bool
	invert  bool
	threads int
	quiet   bool
}

func newFilterCmd() *cobra.Command {
	var o filterOptions
	cmd := &cobra.Command{
		Use:   "filter [flags] <graph.kset> [graph2.kset ...]",
		Short: "print reads with (or without) a k-mer in the graph",
		Long: `Filter reads based on which have a k-mer in the graph.

If either read of a pair touches the graph, both are printed.
Unpaired output goes to <out_base>.fq.gz, paired output to
<out_base>.{1,2}.fq.gz (.fa.gz with --fasta). Existing output files
are never overwritten.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return usageErrf("please specify input graph file(s)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := o.inputs()
			if err != nil {
				return err
			}
			idx, err := graph.LoadAll(args)
			if err != nil {
				return err
			}
			_, err = filter.Run(cmd.Context(), inputs, idx, filter.Options{
				Threads: o.threads,
				Quiet:   o.quiet,
			})
			return err
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&o.seq, "seq", "1", nil, "single-end input, <in>:<out_base> (repeatable)")
	f.StringArrayVarP(&o.seq2, "seq2", "2", nil, "paired input, <in1>:<in2>:<out_base> (repeatable)")
	f.StringArrayVarP(&o.seqi, "seqi", "i", nil, "interleaved input, <in>:<out_base> (repeatable)")
	f.BoolVarP(&o.fasta, "fasta", "f", false, "output as gzipped FASTA")
	f.BoolVarP(&o.fastq, "fastq", "q", false, "output as gzipped FASTQ (default)")
	f.BoolVarP(&o.invert, "invert", "v", false, "print reads/read pairs with no k-mer in the graph")
	f.IntVarP(&o.threads, "threads", "t", 0, "worker threads (0 = all CPUs)")
	f.BoolVar(&o.quiet, "quiet", false, "suppress the progress bar")
	return cmd
}

// inputs turns the in:out spec strings into input groups, applying
// the shared invert and encoding flags. Everything here fails before a
// single file is touched.
func (o *filterOptions) inputs() ([]filter.Input, error) {
	if o.fasta && o.fastq {
		return nil, usageErrf("cannot use both --fasta and --fastq")
	}
	useFastq := !o.fasta // FASTQ is the default

	var inputs []filter.Input
	for _, s := range o.seq {
		in, err := ParseSingleSpec(s, filter.SingleEnd)
		if err != nil {
			return nil, usageErrf("%v", err)
		}
		inputs = append(inputs, in)
	}
	for _, s := range o.seq2 {
		in, err := ParsePairSpec(s)
		if err != nil {
			return nil, usageErrf("%v", err)
		}
		inputs = append(inputs, in)
	}
	for _, s := range o.seqi {
		in, err := ParseSingleSpec(s, filter.Interleaved)
		if err != nil {
			return nil, usageErrf("%v", err)
		}
		inputs = append(inputs, in)
	}
	if len(inputs) == 0 {
		return nil, usageErrf("please specify at least one sequence input (-1, -2 or -i)")
	}
	for i := range inputs {
		inputs[i].Invert = o.invert
		inputs[i].FASTQ = useFastq
	}
	return inputs, nil
}
