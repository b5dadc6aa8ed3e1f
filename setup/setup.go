// Package setup derives the structured reference string and the PLONK
// proving/verifying key pair for a compiled circuit, adapted from the
// teacher's setup/setup.go. Algorand/BLS12-381 trusted-setup embedding is
// dropped (see DESIGN.md); the BN254 TestOnly path and the
// Perpetual-Powers-of-Tau-backed Trusted path are both kept, generalized
// from on-chain verifier deployment to this module's HTTP/CLI prover.
package setup

import (
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	kzg_bn254 "github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/gnark-crypto/kzg"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	gnarkptau "github.com/mdehoog/gnark-ptau"
	"github.com/rs/zerolog/log"
)

// Conf specifies whether Run draws its structured reference string from a
// real Powers-of-Tau ceremony transcript (Trusted) or generates one
// in-process with discarded toxic waste (TestOnly, not suitable for
// production — same caveat as the teacher's setup.Conf).
type Conf int

const (
	Trusted Conf = iota
	TestOnly
)

// PtauFileEnv names the environment variable Run consults for a
// Perpetual-Powers-of-Tau ceremony file when conf is Trusted. If unset, a
// Trusted request falls back to TestOnly and logs that it did so — spec.md
// never requires a specific ceremony, only that the SRS be reused (§3/§5).
const PtauFileEnv = "ZKDOC_PTAU_FILE"

// Run sets up a PLONK system for ccs over BN254, returning its proving and
// verifying keys. numGates is derived from the constraint system the same
// way the teacher's setup.Run does: next power of two over constraints plus
// public variables, padded by 5 to leave room for PLONK's own blinding.
func Run(ccs constraint.ConstraintSystem, conf Conf) (plonk.ProvingKey, plonk.VerifyingKey, error) {
	numGates := ecc.NextPowerOfTwo(uint64(ccs.GetNbConstraints() + ccs.GetNbPublicVariables()))

	srs, err := buildSRS(numGates+5, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("setup: error building SRS: %w", err)
	}

	pk, vk, err := plonk.Setup(ccs, srs)
	if err != nil {
		return nil, nil, fmt.Errorf("setup: error running plonk setup: %w", err)
	}
	return pk, vk, nil
}

func buildSRS(size uint64, conf Conf) (kzg.SRS, error) {
	if conf == Trusted {
		if path := os.Getenv(PtauFileEnv); path != "" {
			srs, err := trustedSetupFromPtau(size, path)
			if err == nil {
				return srs, nil
			}
			log.Warn().Err(err).Str("ptau_file", path).
				Msg("setup: falling back to test-only SRS")
		} else {
			log.Warn().Str("env", PtauFileEnv).
				Msg("setup: no ptau file configured, falling back to test-only SRS")
		}
	}
	return kzg_bn254.NewSRS(size, big.NewInt(-1))
}

// trustedSetupFromPtau converts a real Perpetual-Powers-of-Tau ceremony
// transcript into a gnark-crypto KZG SRS, the same conversion the teacher's
// setup/PerpetualPowersOfTauBN254/audit.go program performs against
// powersOfTau28_hez_final_18.ptau.
func trustedSetupFromPtau(size uint64, path string) (*kzg_bn254.SRS, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening ptau file: %w", err)
	}
	defer file.Close()

	srs, err := gnarkptau.ToSRS(file)
	if err != nil {
		return nil, fmt.Errorf("error converting ptau to SRS: %w", err)
	}
	if uint64(len(srs.Pk.G1)) < size {
		return nil, fmt.Errorf("ptau file has %d G1 points, need %d", len(srs.Pk.G1), size)
	}
	return srs, nil
}
