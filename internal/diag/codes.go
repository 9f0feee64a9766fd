package diag

// Code is a compact, stable identifier for a diagnostic rule. New codes are
// appended; existing codes are never renumbered so golden output and IDE
// suppression lists stay valid across releases.
type Code uint16

const (
	CodeNone Code = iota

	// Name resolution / imports.
	CodeUnknownIdent
	CodeUnknownModule
	CodeImportNotFound
	CodeImportShadowsConst
	CodeDuplicateImport
	CodeDeprecatedImport

	// Declarations.
	CodeDuplicateConst
	CodeDuplicateGlobal
	CodeDuplicateFn
	CodeDuplicateType
	CodeUnknownType
	CodeTypeSelfReference
	CodeUnusedMutable
	CodeUnusedVariable

	// Types / interning.
	CodeCircularAlias
	CodeStructSelfEmbed
	CodeAmbiguousEmbedMethod
	CodeAmbiguousEmbedField
	CodeNoSuchField
	CodeNoSuchMethod

	// Interfaces.
	CodeInterfaceMethodMissing
	CodeInterfaceMethodMismatch
	CodeInterfaceFieldMissing
	CodeInterfaceFieldMismatch
	CodeInterfaceToInterface

	// Generics.
	CodeGenericUnboundParam
	CodeGenericAmbiguousInference
	CodeGenericArityMismatch
	CodeGenericRecheckNotConverged

	// Expressions.
	CodeTypeMismatch
	CodeInvalidOperands
	CodeIndexRequiresSequence
	CodeIndexKeyMismatch
	CodeCastNotAllowed
	CodeAmbiguousBoolPrecedence
	CodeNotExhaustive
	CodeAssignCountMismatch
	CodeAssignToImmutable
	CodeOptionalPropagationMissing
	CodeRecursiveStr

	// Mutability / locking / unsafe.
	CodeMutateImmutable
	CodeMutateConst
	CodeSharedRequiresLock
	CodeLockNested
	CodeLockDuplicate
	CodeLockAndRLockSameName
	CodeUnsafeRequired
	CodeFieldNotMut
	CodeFieldAssignNotMut

	// Calls.
	CodeArgCountMismatch
	CodeArgTypeMismatch
	CodeCallDeprecated
	CodeCallUnsafeOutsideBlock
	CodeCallNoReturnUnused

	// Attributes.
	CodeUnknownAttribute

	// Resource cutoffs.
	CodeExprNestingExceeded
	CodeStmtNestingExceeded
	CodeEmbedDepthExceeded
	CodeMessageLimitExceeded
	CodeEnumVariantCountExceeded

	// Entrypoint / structure.
	CodeMissingMain
	CodeInvalidTestFile
)

// String returns the stable textual form used in golden output and docs.
func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "unknown-code"
}

var codeNames = map[Code]string{
	CodeUnknownIdent:               "unknown-ident",
	CodeUnknownModule:              "unknown-module",
	CodeImportNotFound:             "import-not-found",
	CodeImportShadowsConst:         "import-shadows-const",
	CodeDuplicateImport:            "duplicate-import",
	CodeDeprecatedImport:           "deprecated-import",
	CodeDuplicateConst:             "duplicate-const",
	CodeDuplicateGlobal:            "duplicate-global",
	CodeDuplicateFn:                "duplicate-fn",
	CodeDuplicateType:              "duplicate-type",
	CodeUnknownType:                "unknown-type",
	CodeTypeSelfReference:          "type-self-reference",
	CodeUnusedMutable:              "unused-mutable",
	CodeUnusedVariable:             "unused-variable",
	CodeCircularAlias:              "circular-alias",
	CodeStructSelfEmbed:            "struct-self-embed",
	CodeAmbiguousEmbedMethod:       "ambiguous-embed-method",
	CodeAmbiguousEmbedField:        "ambiguous-embed-field",
	CodeNoSuchField:                "no-such-field",
	CodeNoSuchMethod:               "no-such-method",
	CodeInterfaceMethodMissing:     "interface-method-missing",
	CodeInterfaceMethodMismatch:    "interface-method-mismatch",
	CodeInterfaceFieldMissing:      "interface-field-missing",
	CodeInterfaceFieldMismatch:     "interface-field-mismatch",
	CodeInterfaceToInterface:       "interface-to-interface",
	CodeGenericUnboundParam:        "generic-unbound-param",
	CodeGenericAmbiguousInference:  "generic-ambiguous-inference",
	CodeGenericArityMismatch:       "generic-arity-mismatch",
	CodeGenericRecheckNotConverged: "generic-recheck-not-converged",
	CodeTypeMismatch:               "type-mismatch",
	CodeInvalidOperands:            "invalid-operands",
	CodeIndexRequiresSequence:      "index-requires-sequence",
	CodeIndexKeyMismatch:           "index-key-mismatch",
	CodeCastNotAllowed:             "cast-not-allowed",
	CodeAmbiguousBoolPrecedence:    "ambiguous-bool-precedence",
	CodeNotExhaustive:              "not-exhaustive",
	CodeAssignCountMismatch:        "assign-count-mismatch",
	CodeAssignToImmutable:          "assign-to-immutable",
	CodeOptionalPropagationMissing: "optional-propagation-missing",
	CodeRecursiveStr:               "recursive-str",
	CodeMutateImmutable:            "mutate-immutable",
	CodeMutateConst:                "mutate-const",
	CodeSharedRequiresLock:         "shared-requires-lock",
	CodeLockNested:                 "lock-nested",
	CodeLockDuplicate:              "lock-duplicate",
	CodeLockAndRLockSameName:       "lock-and-rlock-same-name",
	CodeUnsafeRequired:             "unsafe-required",
	CodeFieldNotMut:                "field-not-mut",
	CodeFieldAssignNotMut:          "field-assign-not-mut",
	CodeArgCountMismatch:           "arg-count-mismatch",
	CodeArgTypeMismatch:            "arg-type-mismatch",
	CodeCallDeprecated:             "call-deprecated",
	CodeCallUnsafeOutsideBlock:     "call-unsafe-outside-block",
	CodeCallNoReturnUnused:         "call-noreturn-unused",
	CodeUnknownAttribute:           "unknown-attribute",
	CodeExprNestingExceeded:        "expr-nesting-exceeded",
	CodeStmtNestingExceeded:        "stmt-nesting-exceeded",
	CodeEmbedDepthExceeded:         "embed-depth-exceeded",
	CodeMessageLimitExceeded:       "message-limit-exceeded",
	CodeEnumVariantCountExceeded:   "enum-variant-count-exceeded",
	CodeMissingMain:                "missing-main",
	CodeInvalidTestFile:            "invalid-test-file",
}
