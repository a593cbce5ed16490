// Package hir extracts Higher-level Intermediate Representation symbols
// from a parsed file's typed AST (package ast), the way the teacher's
// internal/core/compile walks cue/ast to produce adt.Vertex conjuncts: a
// single depth-first pass over the tree, driven by a scope stack, that
// turns syntax into semantic records without evaluating anything.
package hir

import "github.com/sysml-tools/sysml-engine/syntax/token"

// SymbolKind is a closed enumeration of every semantic kind a HirSymbol
// can carry (spec.md §3's kind tables), following the token.Kind /
// cst.NodeKind idiom: a small integer type plus a name table.
type SymbolKind uint8

const (
	KindInvalid SymbolKind = iota

	KindPackage
	KindLibraryPackage
	KindNamespace
	KindAlias
	KindImport
	KindComment
	KindOther

	// Usage-only kinds with no matching "def" form (spec.md §3).
	KindTransition
	KindSuccession
	KindConnector
	KindFlowUsage
	KindRef
	KindFeature

	// Definition kinds.
	KindPartDef
	KindPortDef
	KindActionDef
	KindStateDef
	KindItemDef
	KindAttributeDef
	KindConstraintDef
	KindRequirementDef
	KindConcernDef
	KindCalcDef
	KindConnectionDef
	KindInterfaceDef
	KindAllocationDef
	KindUseCaseDef
	KindAnalysisCaseDef
	KindVerificationCaseDef
	KindViewDef
	KindViewpointDef
	KindRenderingDef
	KindEnumerationDef
	KindMetadataDef
	KindClassDef
	KindDataTypeDef
	KindStructureDef
	KindAssociationDef
	KindBehaviorDef
	KindFunctionDef
	KindPredicateDef
	KindInteractionDef
	KindMetaclassDef
	KindStepDef

	// Usage kinds, one per definition kind above.
	KindPartUsage
	KindPortUsage
	KindActionUsage
	KindStateUsage
	KindItemUsage
	KindAttributeUsage
	KindConstraintUsage
	KindRequirementUsage
	KindConcernUsage
	KindCalcUsage
	KindConnectionUsage
	KindInterfaceUsage
	KindAllocationUsage
	KindUseCaseUsage
	KindAnalysisCaseUsage
	KindVerificationCaseUsage
	KindViewUsage
	KindViewpointUsage
	KindRenderingUsage
	KindEnumerationUsage
	KindMetadataUsage
	KindClassUsage
	KindDataTypeUsage
	KindStructureUsage
	KindAssociationUsage
	KindBehaviorUsage
	KindFunctionUsage
	KindPredicateUsage
	KindInteractionUsage
	KindMetaclassUsage
	KindStepUsage

	maxSymbolKind
)

var kindNames = [maxSymbolKind]string{
	KindInvalid:        "Invalid",
	KindPackage:        "Package",
	KindLibraryPackage: "LibraryPackage",
	KindNamespace:      "Namespace",
	KindAlias:          "Alias",
	KindImport:         "Import",
	KindComment:        "Comment",
	KindOther:          "Other",
	KindTransition:     "Transition",
	KindSuccession:     "Succession",
	KindConnector:      "Connector",
	KindFlowUsage:      "FlowUsage",
	KindRef:            "Ref",
	KindFeature:        "Feature",

	KindPartDef:             "PartDef",
	KindPortDef:             "PortDef",
	KindActionDef:           "ActionDef",
	KindStateDef:            "StateDef",
	KindItemDef:             "ItemDef",
	KindAttributeDef:        "AttributeDef",
	KindConstraintDef:       "ConstraintDef",
	KindRequirementDef:      "RequirementDef",
	KindConcernDef:          "ConcernDef",
	KindCalcDef:             "CalcDef",
	KindConnectionDef:       "ConnectionDef",
	KindInterfaceDef:        "InterfaceDef",
	KindAllocationDef:       "AllocationDef",
	KindUseCaseDef:          "UseCaseDef",
	KindAnalysisCaseDef:     "AnalysisCaseDef",
	KindVerificationCaseDef: "VerificationCaseDef",
	KindViewDef:             "ViewDef",
	KindViewpointDef:        "ViewpointDef",
	KindRenderingDef:        "RenderingDef",
	KindEnumerationDef:      "EnumerationDef",
	KindMetadataDef:         "MetadataDef",
	KindClassDef:            "ClassDef",
	KindDataTypeDef:         "DataTypeDef",
	KindStructureDef:        "StructureDef",
	KindAssociationDef:      "AssociationDef",
	KindBehaviorDef:         "BehaviorDef",
	KindFunctionDef:         "FunctionDef",
	KindPredicateDef:        "PredicateDef",
	KindInteractionDef:      "InteractionDef",
	KindMetaclassDef:        "MetaclassDef",
	KindStepDef:             "StepDef",

	KindPartUsage:             "PartUsage",
	KindPortUsage:             "PortUsage",
	KindActionUsage:           "ActionUsage",
	KindStateUsage:            "StateUsage",
	KindItemUsage:             "ItemUsage",
	KindAttributeUsage:        "AttributeUsage",
	KindConstraintUsage:       "ConstraintUsage",
	KindRequirementUsage:      "RequirementUsage",
	KindConcernUsage:          "ConcernUsage",
	KindCalcUsage:             "CalcUsage",
	KindConnectionUsage:       "ConnectionUsage",
	KindInterfaceUsage:        "InterfaceUsage",
	KindAllocationUsage:       "AllocationUsage",
	KindUseCaseUsage:          "UseCaseUsage",
	KindAnalysisCaseUsage:     "AnalysisCaseUsage",
	KindVerificationCaseUsage: "VerificationCaseUsage",
	KindViewUsage:             "ViewUsage",
	KindViewpointUsage:        "ViewpointUsage",
	KindRenderingUsage:        "RenderingUsage",
	KindEnumerationUsage:      "EnumerationUsage",
	KindMetadataUsage:         "MetadataUsage",
	KindClassUsage:            "ClassUsage",
	KindDataTypeUsage:         "DataTypeUsage",
	KindStructureUsage:        "StructureUsage",
	KindAssociationUsage:      "AssociationUsage",
	KindBehaviorUsage:         "BehaviorUsage",
	KindFunctionUsage:         "FunctionUsage",
	KindPredicateUsage:        "PredicateUsage",
	KindInteractionUsage:      "InteractionUsage",
	KindMetaclassUsage:        "MetaclassUsage",
	KindStepUsage:             "StepUsage",
}

func (k SymbolKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Invalid"
}

// defKindOf and usageKindOf map a DefinitionOrUsage's KindKeyword() to the
// SymbolKind for, respectively, a "def" and a bare-usage declaration.
// KW_CONCERN has no entry in spec.md §3's SymbolKind table; it is kept as
// its own Concern{Def,Usage} pair rather than collapsed into Requirement,
// since the grammar treats "concern def" as its own kind-start keyword
// distinct from "requirement def" (see DESIGN.md).
var defKindOf = map[token.Kind]SymbolKind{
	token.KW_PART:        KindPartDef,
	token.KW_PORT:        KindPortDef,
	token.KW_ACTION:      KindActionDef,
	token.KW_STATE:       KindStateDef,
	token.KW_ITEM:        KindItemDef,
	token.KW_ATTRIBUTE:   KindAttributeDef,
	token.KW_CONSTRAINT:  KindConstraintDef,
	token.KW_REQUIREMENT: KindRequirementDef,
	token.KW_CONCERN:     KindConcernDef,
	token.KW_CALC:        KindCalcDef,
	token.KW_CONNECTION:  KindConnectionDef,
	token.KW_INTERFACE:   KindInterfaceDef,
	token.KW_ALLOCATION:  KindAllocationDef,
	token.KW_USE:         KindUseCaseDef,
	token.KW_ANALYSIS:    KindAnalysisCaseDef,
	token.KW_VERIFICATION: KindVerificationCaseDef,
	token.KW_VIEW:        KindViewDef,
	token.KW_VIEWPOINT:   KindViewpointDef,
	token.KW_RENDERING:   KindRenderingDef,
	token.KW_ENUM:        KindEnumerationDef,
	token.KW_METADATA:    KindMetadataDef,
	token.KW_CLASS:       KindClassDef,
	token.KW_DATATYPE:    KindDataTypeDef,
	token.KW_STRUCT:      KindStructureDef,
	token.KW_ASSOCIATION:  KindAssociationDef,
	token.KW_BEHAVIOR:    KindBehaviorDef,
	token.KW_FUNCTION:    KindFunctionDef,
	token.KW_PREDICATE:   KindPredicateDef,
	token.KW_INTERACTION: KindInteractionDef,
	token.KW_METACLASS:   KindMetaclassDef,
	token.KW_STEP:        KindStepDef,
}

var usageKindOf = map[token.Kind]SymbolKind{
	token.KW_PART:        KindPartUsage,
	token.KW_PORT:        KindPortUsage,
	token.KW_ACTION:      KindActionUsage,
	token.KW_STATE:       KindStateUsage,
	token.KW_ITEM:        KindItemUsage,
	token.KW_ATTRIBUTE:   KindAttributeUsage,
	token.KW_CONSTRAINT:  KindConstraintUsage,
	token.KW_REQUIREMENT: KindRequirementUsage,
	token.KW_CONCERN:     KindConcernUsage,
	token.KW_CALC:        KindCalcUsage,
	token.KW_CONNECTION:  KindConnectionUsage,
	token.KW_INTERFACE:   KindInterfaceUsage,
	token.KW_ALLOCATION:  KindAllocationUsage,
	token.KW_USE:         KindUseCaseUsage,
	token.KW_ANALYSIS:    KindAnalysisCaseUsage,
	token.KW_VERIFICATION: KindVerificationCaseUsage,
	token.KW_VIEW:        KindViewUsage,
	token.KW_VIEWPOINT:   KindViewpointUsage,
	token.KW_RENDERING:   KindRenderingUsage,
	token.KW_ENUM:        KindEnumerationUsage,
	token.KW_METADATA:    KindMetadataUsage,
	token.KW_CLASS:       KindClassUsage,
	token.KW_DATATYPE:    KindDataTypeUsage,
	token.KW_STRUCT:      KindStructureUsage,
	token.KW_ASSOCIATION:  KindAssociationUsage,
	token.KW_BEHAVIOR:    KindBehaviorUsage,
	token.KW_FUNCTION:    KindFunctionUsage,
	token.KW_PREDICATE:   KindPredicateUsage,
	token.KW_INTERACTION: KindInteractionUsage,
	token.KW_METACLASS:   KindMetaclassUsage,
	token.KW_STEP:        KindStepUsage,
}

// implicitSupertype maps a declaration's kind keyword to the qualified
// name of its implicit supertype in the bundled standard library
// (SPEC_FULL.md §6's Parts/Actions/States/Items/Connections/Requirements
// packages), per spec.md §4.3's "Kind mapping": "part def X implicitly
// specializes Parts::Part; action def specializes Actions::Action; state
// def specializes States::StateAction; and so on for every definition and
// usage kind." Kinds with no obvious home among the six bundled packages
// (the pure-KerML kinds: class/datatype/structure/association/behavior/
// function/predicate/interaction/metaclass) are assigned the nearest
// domain analog rather than left unspecialized, so that "every... kind"
// holds; see DESIGN.md's Open Question decision.
var implicitSupertype = map[token.Kind]string{
	token.KW_PART:         "Parts::Part",
	token.KW_PORT:         "Parts::Port",
	token.KW_ATTRIBUTE:    "Items::Attribute",
	token.KW_ENUM:         "Items::Attribute",
	token.KW_ITEM:         "Items::Item",
	token.KW_METADATA:     "Items::Item",
	token.KW_CLASS:        "Items::Item",
	token.KW_DATATYPE:     "Items::Item",
	token.KW_STRUCT:       "Items::Item",
	token.KW_ACTION:       "Actions::Action",
	token.KW_STEP:         "Actions::Step",
	token.KW_CALC:         "Actions::Calculation",
	token.KW_BEHAVIOR:     "Actions::Action",
	token.KW_FUNCTION:     "Actions::Action",
	token.KW_PREDICATE:    "Actions::Action",
	token.KW_USE:          "Actions::Action",
	token.KW_ANALYSIS:     "Actions::Action",
	token.KW_VERIFICATION: "Actions::Action",
	token.KW_STATE:        "States::StateAction",
	token.KW_CONNECTION:   "Connections::Connection",
	token.KW_INTERFACE:    "Connections::Interface",
	token.KW_ALLOCATION:   "Connections::Allocation",
	token.KW_ASSOCIATION:  "Connections::Connection",
	token.KW_INTERACTION:  "Connections::Connection",
	token.KW_METACLASS:    "Items::Item",
	token.KW_CONSTRAINT:   "Requirements::Constraint",
	token.KW_REQUIREMENT:  "Requirements::Requirement",
	token.KW_CONCERN:      "Requirements::Requirement",
	token.KW_VIEW:         "Items::Item",
	token.KW_VIEWPOINT:    "Items::Item",
	token.KW_RENDERING:    "Items::Item",
}
