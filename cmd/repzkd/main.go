// repzkd is a thin smoke-test harness for the reputation proof verifier:
// load a policy file, build one verify context, and check proof records
// read from stdin or a file argument against it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/certen/repzk/internal/config"
	"github.com/certen/repzk/pkg/engine"
	"github.com/certen/repzk/pkg/groth16"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	policyPath := flag.String("policy", "", "path to the YAML engine policy file")
	proofsPath := flag.String("proofs", "", "file of concatenated 330-byte proof records (default: stdin)")
	flag.Parse()

	if *policyPath == "" {
		return fmt.Errorf("-policy is required")
	}
	cfg, err := config.Load(*policyPath)
	if err != nil {
		return err
	}

	vkBytes, err := os.ReadFile(cfg.Verification.VKPath)
	if err != nil {
		return fmt.Errorf("reading vk: %w", err)
	}
	vk, err := groth16.LoadVK(vkBytes)
	if err != nil {
		return fmt.Errorf("loading vk: %w", err)
	}
	blacklistRoot, err := cfg.BlacklistRootBytes()
	if err != nil {
		return err
	}

	ctx := engine.NewContext(vk, cfg.Verification.MaxProofAge.Duration(), cfg.Verification.MinThreshold, blacklistRoot)
	defer ctx.Close()

	var src io.Reader = os.Stdin
	if *proofsPath != "" {
		f, err := os.Open(*proofsPath)
		if err != nil {
			return fmt.Errorf("opening proofs file: %w", err)
		}
		defer f.Close()
		src = f
	}

	return verifyStream(ctx, src, os.Stdout)
}

// verifyStream reads fixed-size wire proof records from r and writes one
// status line per record to w.
func verifyStream(ctx *engine.Context, r io.Reader, w io.Writer) error {
	buf := make([]byte, engine.WireProofSize)
	br := bufio.NewReader(r)
	count := 0
	now := time.Now()

	for {
		_, err := io.ReadFull(br, buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading record %d: %w", count, err)
		}
		res, err := ctx.VerifyProof(buf, now, nil)
		if err != nil {
			return fmt.Errorf("record %d: %w", count, err)
		}
		fmt.Fprintf(w, "%d agent=%s status=%s\n", count, hexAgentID(res.AgentID), res.Status)
		count++
	}

	stats := ctx.Stats()
	fmt.Fprintf(w, "# verified=%d failed=%d avg_micros=%.1f\n",
		stats.TotalVerified, stats.TotalFailed, stats.AvgVerifyMicros)
	return nil
}

func hexAgentID(id [32]byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 0; i < 8; i++ {
		v := id[i]
		out[i*2] = hexdigits[v>>4]
		out[i*2+1] = hexdigits[v&0xF]
	}
	return string(out)
}
