package token

const (
	Undetermined Token = iota

	Eof

	String
	Number
	BigInt
	RegExp
	PrivateIdentifier // #name
	JSXText

	TemplateHead           // `...${
	TemplateMiddle         // }...${
	TemplateTail           // }...`
	NoSubstitutionTemplate // `...`

	Plus      // +
	Minus     // -
	Multiply  // *
	Exponent  // **
	Slash     // /
	Remainder // %

	And                // &
	Or                 // |
	ExclusiveOr        // ^
	ShiftLeft          // <<
	ShiftRight         // >>
	UnsignedShiftRight // >>>

	LogicalAnd // &&
	LogicalOr  // ||
	Coalesce   // ??
	Increment  // ++
	Decrement  // --

	Equal          // ==
	StrictEqual    // ===
	NotEqual       // !=
	StrictNotEqual // !==
	Less           // <
	Greater        // >
	LessOrEqual    // <=
	GreaterOrEqual // >=
	Not            // !
	BitwiseNot     // ~

	Assign          // =
	AddAssign       // +=
	SubtractAssign  // -=
	MultiplyAssign  // *=
	ExponentAssign  // **=
	QuotientAssign  // /=
	RemainderAssign // %=

	AndAssign                // &=
	OrAssign                 // |=
	ExclusiveOrAssign        // ^=
	ShiftLeftAssign          // <<=
	ShiftRightAssign         // >>=
	UnsignedShiftRightAssign // >>>=

	LogicalAndAssign // &&=
	LogicalOrAssign  // ||=
	CoalesceAssign   // ??=

	LeftParenthesis // (
	LeftBracket     // [
	LeftBrace       // {
	Comma           // ,
	Period          // .

	RightParenthesis // )
	RightBracket     // ]
	RightBrace       // }
	Semicolon        // ;
	Colon            // :
	QuestionMark     // ?
	QuestionDot      // ?.
	Arrow            // =>
	Ellipsis         // ...

	Identifier
	Boolean
	Null

	If
	In
	Do

	Var
	For
	New
	Try

	This
	Else
	Case
	Void
	With
	Enum

	Const
	While
	Break
	Catch
	Throw
	Class
	Super

	Import
	Export
	Return
	Typeof
	Delete
	Switch

	Default
	Finally
	Extends

	Function
	Continue
	Debugger

	InstanceOf

	EscapedReservedWord

	// Contextual keywords: valid identifiers in at least some contexts.

	Let
	Static
	Async
	Await
	Yield
	Of
	As
	From
	Get
	Set
	Target
	Meta
	Satisfies
	Type
	Interface
	Declare
	Abstract
	Readonly
	Keyof
	Implements
	Package
	Private
	Protected
	Public
)

var token2string = [...]string{
	Eof:                      "EOF",
	String:                   "string",
	Number:                   "number",
	BigInt:                   "bigint",
	RegExp:                   "regular expression",
	PrivateIdentifier:        "private identifier",
	JSXText:                  "JSX text",
	TemplateHead:             "template head",
	TemplateMiddle:           "template middle",
	TemplateTail:             "template tail",
	NoSubstitutionTemplate:   "template",
	Identifier:               "identifier",
	Plus:                     "+",
	Minus:                    "-",
	Exponent:                 "**",
	Multiply:                 "*",
	Slash:                    "/",
	Remainder:                "%",
	And:                      "&",
	Or:                       "|",
	ExclusiveOr:              "^",
	ShiftLeft:                "<<",
	ShiftRight:               ">>",
	UnsignedShiftRight:       ">>>",
	AddAssign:                "+=",
	SubtractAssign:           "-=",
	MultiplyAssign:           "*=",
	ExponentAssign:           "**=",
	QuotientAssign:           "/=",
	RemainderAssign:          "%=",
	AndAssign:                "&=",
	OrAssign:                 "|=",
	ExclusiveOrAssign:        "^=",
	ShiftLeftAssign:          "<<=",
	ShiftRightAssign:         ">>=",
	UnsignedShiftRightAssign: ">>>=",
	LogicalAnd:               "&&",
	LogicalOr:                "||",
	Coalesce:                 "??",
	LogicalAndAssign:         "&&=",
	LogicalOrAssign:          "||=",
	CoalesceAssign:           "??=",
	Increment:                "++",
	Decrement:                "--",
	Equal:                    "==",
	StrictEqual:              "===",
	Less:                     "<",
	Greater:                  ">",
	Assign:                   "=",
	Not:                      "!",
	BitwiseNot:               "~",
	NotEqual:                 "!=",
	StrictNotEqual:           "!==",
	LessOrEqual:              "<=",
	GreaterOrEqual:           ">=",
	LeftParenthesis:          "(",
	LeftBracket:              "[",
	LeftBrace:                "{",
	Comma:                    ",",
	Period:                   ".",
	RightParenthesis:         ")",
	RightBracket:             "]",
	RightBrace:               "}",
	Semicolon:                ";",
	Colon:                    ":",
	QuestionMark:             "?",
	QuestionDot:              "?.",
	Arrow:                    "=>",
	Ellipsis:                 "...",
	Boolean:                  "boolean",
	Null:                     "null",
	If:                       "if",
	In:                       "in",
	Do:                       "do",
	Var:                      "var",
	For:                      "for",
	New:                      "new",
	Try:                      "try",
	This:                     "this",
	Else:                     "else",
	Case:                     "case",
	Void:                     "void",
	With:                     "with",
	Enum:                     "enum",
	Const:                    "const",
	While:                    "while",
	Break:                    "break",
	Catch:                    "catch",
	Throw:                    "throw",
	Class:                    "class",
	Super:                    "super",
	Import:                   "import",
	Export:                   "export",
	Return:                   "return",
	Typeof:                   "typeof",
	Delete:                   "delete",
	Switch:                   "switch",
	Default:                  "default",
	Finally:                  "finally",
	Extends:                  "extends",
	Function:                 "function",
	Continue:                 "continue",
	Debugger:                 "debugger",
	InstanceOf:               "instanceof",
	EscapedReservedWord:      "escaped reserved word",
	Let:                      "let",
	Static:                   "static",
	Async:                    "async",
	Await:                    "await",
	Yield:                    "yield",
	Of:                       "of",
	As:                       "as",
	From:                     "from",
	Get:                      "get",
	Set:                      "set",
	Target:                   "target",
	Meta:                     "meta",
	Satisfies:                "satisfies",
	Type:                     "type",
	Interface:                "interface",
	Declare:                  "declare",
	Abstract:                 "abstract",
	Readonly:                 "readonly",
	Keyof:                    "keyof",
	Implements:               "implements",
	Package:                  "package",
	Private:                  "private",
	Protected:                "protected",
	Public:                   "public",
}

var keywordTable = map[string]keyword{
	"if":         {token: If},
	"in":         {token: In},
	"do":         {token: Do},
	"var":        {token: Var},
	"for":        {token: For},
	"new":        {token: New},
	"try":        {token: Try},
	"this":       {token: This},
	"else":       {token: Else},
	"case":       {token: Case},
	"void":       {token: Void},
	"with":       {token: With},
	"enum":       {token: Enum},
	"while":      {token: While},
	"break":      {token: Break},
	"catch":      {token: Catch},
	"throw":      {token: Throw},
	"return":     {token: Return},
	"typeof":     {token: Typeof},
	"delete":     {token: Delete},
	"switch":     {token: Switch},
	"default":    {token: Default},
	"finally":    {token: Finally},
	"function":   {token: Function},
	"continue":   {token: Continue},
	"debugger":   {token: Debugger},
	"instanceof": {token: InstanceOf},
	"const":      {token: Const},
	"class":      {token: Class},
	"extends":    {token: Extends},
	"super":      {token: Super},
	"import":     {token: Import},
	"export":     {token: Export},
	"false":      {token: Boolean},
	"true":       {token: Boolean},
	"null":       {token: Null},

	"let":        {token: Let, strict: true},
	"static":     {token: Static, strict: true},
	"yield":      {token: Yield, strict: true},
	"implements": {token: Implements, strict: true},
	"interface":  {token: Interface, strict: true},
	"package":    {token: Package, strict: true},
	"private":    {token: Private, strict: true},
	"protected":  {token: Protected, strict: true},
	"public":     {token: Public, strict: true},
	"async":      {token: Async},
	"await":      {token: Await},
	"of":         {token: Of},
	"as":         {token: As},
	"from":       {token: From},
	"get":        {token: Get},
	"set":        {token: Set},
	"target":     {token: Target},
	"meta":       {token: Meta},
	"satisfies":  {token: Satisfies},
	"type":       {token: Type},
	"declare":    {token: Declare},
	"abstract":   {token: Abstract},
	"readonly":   {token: Readonly},
	"keyof":      {token: Keyof},
}
