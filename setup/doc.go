/*
Package setup builds the structured reference string and PLONK
proving/verifying key pair used to prove and verify document circuits.

Source of the trusted parameters
====================================================================================================
To secure the PLONK protocol we need shared security parameters between
Prover and Verifier. Deriving them requires a "trusted setup" procedure, so
called because it is critical to run it correctly to preserve the security
of proof verification.

To make the risk of a dishonest setup statistically insignificant, a
distributed, permissionless setup ceremony, open to everyone, can be run
instead. The ceremony stays secure as long as at least one participant is
honest; every participant would need to collude to act maliciously.

For the BN254 curve, this package can consume the parameters from the
battle-tested perpetual "powers-of-tau" ceremony used by projects such as
Semaphore, Hermez, Tornado Cash and snarkjs, via
github.com/mdehoog/gnark-ptau's conversion of a ceremony .ptau file into a
gnark-crypto KZG SRS (setup.Trusted, ZKDOC_PTAU_FILE).

Learn more about the ceremony here:
https://github.com/privacy-scaling-explorations/perpetualpowersoftau

When no ceremony file is configured, setup.Run falls back to an in-process,
discarded-toxic-waste SRS (setup.TestOnly) — correct for development and
testing, not for production use.
*/
package setup
