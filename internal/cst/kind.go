package cst

// Kind tags every node and token of the tree.
type Kind uint8

const (
	// KindOther is any node the analysis does not look at.
	KindOther Kind = iota
	KindSourceFile
	KindFn
	KindStruct
	KindEnum
	KindTrait
	KindImpl
	KindModule
	KindName
	KindPathType
	KindAttr
	KindMeta
	KindPath
	KindLiteral
	KindItemList

	// KindOtherToken is any token the analysis does not look at.
	KindOtherToken
	KindWhitespace
	KindComment
	KindFnKw
	KindStructKw
	KindForKw
	KindSemicolon
	KindString
	KindIdent
)

var kindNames = [...]string{
	KindOther:      "OTHER",
	KindSourceFile: "SOURCE_FILE",
	KindFn:         "FN",
	KindStruct:     "STRUCT",
	KindEnum:       "ENUM",
	KindTrait:      "TRAIT",
	KindImpl:       "IMPL",
	KindModule:     "MODULE",
	KindName:       "NAME",
	KindPathType:   "PATH_TYPE",
	KindAttr:       "ATTR",
	KindMeta:       "META",
	KindPath:       "PATH",
	KindLiteral:    "LITERAL",
	KindItemList:   "ITEM_LIST",
	KindOtherToken: "OTHER_TOKEN",
	KindWhitespace: "WHITESPACE",
	KindComment:    "COMMENT",
	KindFnKw:       "FN_KW",
	KindStructKw:   "STRUCT_KW",
	KindForKw:      "FOR_KW",
	KindSemicolon:  "SEMICOLON",
	KindString:     "STRING",
	KindIdent:      "IDENT",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// tree-sitter-rust node kinds that map onto node kinds of this package.
var nodeKinds = map[string]Kind{
	"source_file":             KindSourceFile,
	"function_item":           KindFn,
	"function_signature_item": KindFn,
	"struct_item":             KindStruct,
	"enum_item":               KindEnum,
	"trait_item":              KindTrait,
	"impl_item":               KindImpl,
	"mod_item":                KindModule,
	"declaration_list":        KindItemList,
	"attribute_item":          KindAttr,
	"attribute":               KindMeta,
	"string_literal":          KindLiteral,
	"raw_string_literal":      KindLiteral,
}

var tokenKinds = map[string]Kind{
	"fn":              KindFnKw,
	"struct":          KindStructKw,
	"for":             KindForKw,
	";":               KindSemicolon,
	"line_comment":    KindComment,
	"block_comment":   KindComment,
	"identifier":      KindIdent,
	"type_identifier": KindIdent,
}

// Items that take preceding attributes and comments as their own children.
var attractsTrivia = map[string]bool{
	"function_item":            true,
	"function_signature_item":  true,
	"struct_item":              true,
	"enum_item":                true,
	"trait_item":               true,
	"impl_item":                true,
	"mod_item":                 true,
	"union_item":               true,
	"const_item":               true,
	"static_item":              true,
	"type_item":                true,
	"use_declaration":          true,
	"macro_definition":         true,
	"extern_crate_declaration": true,
	"field_declaration":        true,
	"enum_variant":             true,
	"associated_type":          true,
	"foreign_mod_item":         true,
	"macro_invocation":         true,
}

// Items whose name field becomes a Name node.
var namedItems = map[string]bool{
	"function_item":           true,
	"function_signature_item": true,
	"struct_item":             true,
	"enum_item":               true,
	"trait_item":              true,
	"mod_item":                true,
	"union_item":              true,
	"const_item":              true,
	"static_item":             true,
	"type_item":               true,
}

// Type forms inside an impl header that count as path types.
var pathTypes = map[string]bool{
	"type_identifier":        true,
	"generic_type":           true,
	"scoped_type_identifier": true,
}

// Attribute paths.
var attributePaths = map[string]bool{
	"identifier":        true,
	"scoped_identifier": true,
}
