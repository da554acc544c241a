package ir

// RegClass is the symbolic register class a source-level operand names:
// "n" (bare %N, spans dyvarb then stvarb), "g" (global), "t" (temporary),
// plus the two special tokens %res and %0 (§3).
type RegClass int

const (
	ClassNumeric RegClass = iota
	ClassGlobal
	ClassTemp
	ClassResult
	ClassZero
)

// EnvQual is the optional explicit "(%env)" / "(%penv)" / "(%tenv)"
// suffix. QualDefault means no suffix was written; the compiler then
// derives the qualifier from RegClass (§4.4 step 2).
type EnvQual int

const (
	QualDefault EnvQual = iota
	QualEnv
	QualPEnv
	QualTEnv
)

// RegOperand is a source-level register reference, still symbolic: the
// compiler resolves it into a register.Ref once it knows the enclosing
// function's dyvarb count.
type RegOperand struct {
	Class        RegClass
	Index        int // meaningful for ClassNumeric, ClassGlobal, ClassTemp
	ExplicitQual EnvQual
}
