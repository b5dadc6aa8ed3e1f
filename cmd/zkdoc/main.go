// Command zkdoc is the CLI surface supplemented from original_source's
// zkdoc_cli (out of scope per spec.md §1, but its three subcommands are
// reused here per SPEC_FULL.md §5 — everything the distillation dropped
// that original_source still does is fair game). Colored/spinner terminal
// output is deliberately not reproduced; progress is reported through the
// same zerolog logger the server uses (SPEC_FULL.md §1's ambient stack).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rowcommit/zkdoc/digest"
	"github.com/rowcommit/zkdoc/prover"
	"github.com/rowcommit/zkdoc/setup"
	"github.com/rowcommit/zkdoc/zkfield"
)

type generateRequest struct {
	RowTitles    []string `json:"row_titles"`
	RowContents  []string `json:"row_contents"`
	RowSelectors []uint64 `json:"row_selectors"`
}

type verifyRequest struct {
	Proof      prover.ProofBytes `json:"proof"`
	RowTitle   string            `json:"row_title"`
	RowContent string            `json:"row_content"`
	Commitment string            `json:"commitment"`
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "No subcommand was used")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "gen-commitment":
		runGenCommitment(os.Args[2:])
	case "gen-proof":
		runGenProof(os.Args[2:])
	case "verify-proof":
		runVerifyProof(os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, "No subcommand was used")
		os.Exit(1)
	}
}

func inputFileFlag(fs *flag.FlagSet) *string {
	return fs.String("input-file", "", "input JSON file (required)")
}

func readRequest(path string, v interface{}) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("something went wrong reading the file")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("failed to deserialize JSON file")
	}
}

func saveToFile(filename, data string) {
	if err := os.WriteFile(filename, []byte(data), 0o644); err != nil {
		log.Error().Err(err).Str("file", filename).Msg("failed to save output file")
		return
	}
	log.Info().Str("file", filename).Msg("output written")
}

func runGenCommitment(args []string) {
	fs := flag.NewFlagSet("gen-commitment", flag.ExitOnError)
	input := inputFileFlag(fs)
	fs.Parse(args)

	var req generateRequest
	readRequest(*input, &req)

	doc, err := digest.CommitAndAccumulate(req.RowTitles, req.RowContents, req.RowSelectors)
	if err != nil {
		log.Fatal().Err(err).Msg("error computing commitment")
	}

	commitment := zkfield.Hex(doc.Commitment)
	log.Info().Str("commitment", commitment).Msg("generated commitment")
	saveToFile("commitment.txt", commitment)
}

func runGenProof(args []string) {
	fs := flag.NewFlagSet("gen-proof", flag.ExitOnError)
	input := inputFileFlag(fs)
	fs.Parse(args)

	var req generateRequest
	readRequest(*input, &req)

	cc, err := prover.Compile(len(req.RowTitles), setup.Trusted)
	if err != nil {
		log.Fatal().Err(err).Msg("error compiling circuit")
	}

	log.Info().Msg("running ZK circuit, this can take tens of seconds")
	proofBytes, _, err := cc.Prove(req.RowTitles, req.RowContents, req.RowSelectors)
	if err != nil {
		log.Fatal().Err(err).Msg("error generating proof")
	}

	proofJSON, err := json.Marshal(prover.ProofBytes(proofBytes))
	if err != nil {
		log.Fatal().Err(err).Msg("error encoding proof")
	}
	saveToFile("proof.txt", string(proofJSON))
}

func runVerifyProof(args []string) {
	fs := flag.NewFlagSet("verify-proof", flag.ExitOnError)
	input := inputFileFlag(fs)
	fs.Parse(args)

	var req verifyRequest
	readRequest(*input, &req)

	cc, err := prover.Compile(10, setup.Trusted)
	if err != nil {
		log.Fatal().Err(err).Msg("error compiling circuit")
	}

	log.Info().Msg("running ZK circuit, this can take tens of seconds")
	valid, err := cc.Verify([]byte(req.Proof), req.Commitment, req.RowTitle, req.RowContent)
	if err != nil {
		log.Fatal().Err(err).Msg("error verifying proof")
	}

	log.Info().Bool("valid", valid).Msg("proof verification result")
}
