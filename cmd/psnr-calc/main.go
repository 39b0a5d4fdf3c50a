// ABOUTME: Standalone PSNR comparison of decoder output against references
// ABOUTME: Scores target/reference file pairs and prints a result table
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iamf-tools/iamf-conformance/internal/version"
	"github.com/iamf-tools/iamf-conformance/pkg/audio/decode"
	"github.com/iamf-tools/iamf-conformance/pkg/psnr"
)

// listSeparator joins multiple file names in --target and --ref
const listSeparator = "::"

var errListLength = errors.New("--target and --ref must name the same number of files")

var (
	dir     string
	target  string
	ref     string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

var rootCmd = &cobra.Command{
	Use:   "psnr-calc",
	Short: "PSNR verification of decoder output",
	Long: `Compares decoder output files with reference renderings and prints the
average channel PSNR of every pair. References may be WAV or FLAC.

Examples:
  psnr-calc --dir out --target test1.wav --ref test1_ref.wav
  psnr-calc --dir out --target a.wav::b.wav --ref a_ref.wav::b_ref.flac -v`,
	Version:      version.String(),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if verbose {
			log.SetFlags(0)
		} else {
			log.SetOutput(io.Discard)
		}
		return run(cmd.OutOrStdout(), dir, strings.Split(target, listSeparator), strings.Split(ref, listSeparator))
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&dir, "dir", "", "decoder verification wav output directory")
	f.StringVar(&target, "target", "", "decoder output file; join multiple files with :: (ex - test1.wav::test2.wav)")
	f.StringVar(&ref, "ref", "", "PSNR reference file; join multiple files with :: (ex - test1.wav::test2.wav)")
	f.BoolVarP(&verbose, "verbose", "v", false, "Log the PSNR of each channel")
	_ = rootCmd.MarkFlagRequired("dir")
	_ = rootCmd.MarkFlagRequired("target")
	_ = rootCmd.MarkFlagRequired("ref")
}

// run scores each targets[i] against refs[i]. Pairs that cannot be compared
// print their error and score 0.
func run(w io.Writer, dir string, targets, refs []string) error {
	if len(targets) != len(refs) {
		return fmt.Errorf("%w: %d vs %d", errListLength, len(targets), len(refs))
	}

	scores := make([]float64, len(targets))
	for i := range targets {
		fmt.Fprintf(w, "[%d] PSNR evaluation: compare %s with %s\n", i, targets[i], refs[i])

		score, err := compare(filepath.Join(dir, refs[i]), filepath.Join(dir, targets[i]))
		if err != nil {
			fmt.Fprintln(w, err)
		} else {
			fmt.Fprintf(w, "average PSNR: %.15f\n", score)
		}
		scores[i] = score
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\n\n\n[Result] - (If the OPUS or AAC codec has a over avgPSNR %g, it is"+
		" considered PASS. Other codecs must be over avgPSNR %g.)\n", 30.0, 80.0)
	for i, score := range scores {
		fmt.Fprintf(w, "TC#%d : %.3f (compare %s with %s)\n", i, round3(score), targets[i], refs[i])
	}
	return nil
}

// compare returns the thresholdable PSNR of target against ref
func compare(refPath, targetPath string) (float64, error) {
	refBuf, err := decode.Load(refPath)
	if err != nil {
		return 0, err
	}
	targetBuf, err := decode.Load(targetPath)
	if err != nil {
		return 0, err
	}

	raw, err := psnr.Buffers(refBuf, targetBuf)
	if err != nil {
		return 0, err
	}

	channels, _ := psnr.PerChannel(refBuf.Samples, targetBuf.Samples, refBuf.Format.Channels, refBuf.Format.BytesPerSample())
	for ch, v := range channels {
		log.Printf("ch#%d PSNR: %s", ch, psnr.FormatChannel(v))
	}
	return psnr.Score(raw), nil
}

// round3 rounds half away from zero at three decimals before %.3f formatting
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
