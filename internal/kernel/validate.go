package kernel

import (
	"axion/internal/logging"
)

// ValidateStep checks a single inference step against the statements
// available at that point in the proof. Every premise must be present in
// available (identity by content). Modus ponens steps are additionally
// recomputed: the stated conclusion must equal what the rule derives from the
// two premises. Other rule kinds are accepted once their premises are
// available; their derivations are not recomputed.
func (k *Kernel) ValidateStep(step ProofStep, available []Expression) bool {
	for _, premise := range step.Premises {
		if !containsExpression(available, premise) {
			return false
		}
	}

	if step.Rule == ModusPonens {
		if len(step.Premises) != 2 {
			return false
		}
		result := k.ModusPonens(step.Premises[0], step.Premises[1])
		return result != nil && result.Content == step.Statement.Content
	}

	return true
}

// ValidateProof replays the proof's steps in order against a growing set of
// available statements seeded from the assumptions. The first failing step
// rejects the whole proof. If every step validates, the proof is non-empty,
// and the final step states the theorem, the proof is finalized (validity set,
// certificate hash computed) and ValidateProof returns true. This is the only
// path to the valid+hashed state.
func (k *Kernel) ValidateProof(proof *Proof) bool {
	available := make([]Expression, len(proof.Assumptions))
	copy(available, proof.Assumptions)

	for _, step := range proof.Steps {
		if !k.ValidateStep(step, available) {
			logging.KernelDebug("Proof rejected at line %d: %s", step.LineNumber, step.Statement.Content)
			return false
		}
		available = append(available, step.Statement)
	}

	if len(proof.Steps) == 0 {
		return false
	}
	final := proof.Steps[len(proof.Steps)-1].Statement
	if final.Content != proof.Theorem.Content {
		return false
	}

	proof.finalize()
	logging.Kernel("Proof finalized: theorem=%q steps=%d hash=%s", proof.Theorem.Content, len(proof.Steps), proof.ProofHash)
	return true
}

func containsExpression(list []Expression, target Expression) bool {
	for _, e := range list {
		if e.Content == target.Content {
			return true
		}
	}
	return false
}
