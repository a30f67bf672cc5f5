package ast

// Kind and marker implementations.

func (e *StringLit) Kind() string             { return "StringLit" }
func (e *BoolLit) Kind() string               { return "BoolLit" }
func (e *NullLit) Kind() string               { return "NullLit" }
func (e *UndefinedLit) Kind() string          { return "UndefinedLit" }
func (e *NumberLit) Kind() string             { return "NumberLit" }
func (e *FloatLit) Kind() string              { return "FloatLit" }
func (e *BigIntLit) Kind() string             { return "BigIntLit" }
func (e *RegexLit) Kind() string              { return "RegexLit" }
func (e *BinaryExpr) Kind() string            { return "BinaryExpr" }
func (e *AddExpr) Kind() string               { return "AddExpr" }
func (e *TernaryExpr) Kind() string           { return "TernaryExpr" }
func (e *CommaExpr) Kind() string             { return "CommaExpr" }
func (e *UnaryExpr) Kind() string             { return "UnaryExpr" }
func (e *ArrayLit) Kind() string              { return "ArrayLit" }
func (e *ObjectLit) Kind() string             { return "ObjectLit" }
func (e *SpreadExpr) Kind() string            { return "SpreadExpr" }
func (e *VarExpr) Kind() string               { return "VarExpr" }
func (e *MemberExpr) Kind() string            { return "MemberExpr" }
func (e *CallExpr) Kind() string              { return "CallExpr" }
func (e *FunctionCall) Kind() string          { return "FunctionCall" }
func (e *MemberCall) Kind() string            { return "MemberCall" }
func (e *FuncLit) Kind() string               { return "FuncLit" }
func (e *NewCall) Kind() string               { return "NewCall" }
func (e *MathCall) Kind() string              { return "MathCall" }
func (e *MathConst) Kind() string             { return "MathConst" }
func (e *DateNow) Kind() string               { return "DateNow" }
func (e *NewDate) Kind() string               { return "NewDate" }
func (e *NewRegExp) Kind() string             { return "NewRegExp" }
func (e *NewMap) Kind() string                { return "NewMap" }
func (e *NewSet) Kind() string                { return "NewSet" }
func (e *NewPromise) Kind() string            { return "NewPromise" }
func (e *NewURL) Kind() string                { return "NewURL" }
func (e *NewURLSearchParams) Kind() string    { return "NewURLSearchParams" }
func (e *NewFormData) Kind() string           { return "NewFormData" }
func (e *NewArrayBuffer) Kind() string        { return "NewArrayBuffer" }
func (e *NewTypedArray) Kind() string         { return "NewTypedArray" }
func (e *NewBlob) Kind() string               { return "NewBlob" }
func (e *NewIntlNumberFormat) Kind() string   { return "NewIntlNumberFormat" }
func (e *NewIntlDateTimeFormat) Kind() string { return "NewIntlDateTimeFormat" }
func (e *NewIntlCollator) Kind() string       { return "NewIntlCollator" }
func (e *JSONParse) Kind() string             { return "JSONParse" }
func (e *JSONStringify) Kind() string         { return "JSONStringify" }
func (e *ObjectKeys) Kind() string            { return "ObjectKeys" }
func (e *ObjectValues) Kind() string          { return "ObjectValues" }
func (e *ObjectEntries) Kind() string         { return "ObjectEntries" }
func (e *ObjectAssign) Kind() string          { return "ObjectAssign" }
func (e *ArrayIsArray) Kind() string          { return "ArrayIsArray" }
func (e *ArrayFrom) Kind() string             { return "ArrayFrom" }
func (e *ArrayOf) Kind() string               { return "ArrayOf" }
func (e *PromiseResolve) Kind() string        { return "PromiseResolve" }
func (e *PromiseReject) Kind() string         { return "PromiseReject" }
func (e *PromiseAll) Kind() string            { return "PromiseAll" }
func (e *PromiseRace) Kind() string           { return "PromiseRace" }
func (e *SetTimeout) Kind() string            { return "SetTimeout" }
func (e *SetInterval) Kind() string           { return "SetInterval" }
func (e *ClearTimeout) Kind() string          { return "ClearTimeout" }
func (e *ClearInterval) Kind() string         { return "ClearInterval" }
func (e *QueueMicrotask) Kind() string        { return "QueueMicrotask" }
func (e *RequestAnimationFrame) Kind() string { return "RequestAnimationFrame" }
func (e *ConsoleCall) Kind() string           { return "ConsoleCall" }
func (e *ParseIntCall) Kind() string          { return "ParseIntCall" }
func (e *ParseFloatCall) Kind() string        { return "ParseFloatCall" }
func (e *IsNaNCall) Kind() string             { return "IsNaNCall" }
func (e *IsFiniteCall) Kind() string          { return "IsFiniteCall" }
func (e *NumberCtor) Kind() string            { return "NumberCtor" }
func (e *StringCtor) Kind() string            { return "StringCtor" }
func (e *BooleanCtor) Kind() string           { return "BooleanCtor" }
func (e *SymbolCall) Kind() string            { return "SymbolCall" }
func (e *EncodeURIComponent) Kind() string    { return "EncodeURIComponent" }
func (e *DecodeURIComponent) Kind() string    { return "DecodeURIComponent" }
func (e *EncodeURI) Kind() string             { return "EncodeURI" }
func (e *DecodeURI) Kind() string             { return "DecodeURI" }
func (e *BtoaCall) Kind() string              { return "BtoaCall" }
func (e *AtobCall) Kind() string              { return "AtobCall" }
func (e *StorageCall) Kind() string           { return "StorageCall" }
func (e *DocumentCall) Kind() string          { return "DocumentCall" }

func (e *StringLit) exprNode()             {}
func (e *BoolLit) exprNode()               {}
func (e *NullLit) exprNode()               {}
func (e *UndefinedLit) exprNode()          {}
func (e *NumberLit) exprNode()             {}
func (e *FloatLit) exprNode()              {}
func (e *BigIntLit) exprNode()             {}
func (e *RegexLit) exprNode()              {}
func (e *BinaryExpr) exprNode()            {}
func (e *AddExpr) exprNode()               {}
func (e *TernaryExpr) exprNode()           {}
func (e *CommaExpr) exprNode()             {}
func (e *UnaryExpr) exprNode()             {}
func (e *ArrayLit) exprNode()              {}
func (e *ObjectLit) exprNode()             {}
func (e *SpreadExpr) exprNode()            {}
func (e *VarExpr) exprNode()               {}
func (e *MemberExpr) exprNode()            {}
func (e *CallExpr) exprNode()              {}
func (e *FunctionCall) exprNode()          {}
func (e *MemberCall) exprNode()            {}
func (e *FuncLit) exprNode()               {}
func (e *NewCall) exprNode()               {}
func (e *MathCall) exprNode()              {}
func (e *MathConst) exprNode()             {}
func (e *DateNow) exprNode()               {}
func (e *NewDate) exprNode()               {}
func (e *NewRegExp) exprNode()             {}
func (e *NewMap) exprNode()                {}
func (e *NewSet) exprNode()                {}
func (e *NewPromise) exprNode()            {}
func (e *NewURL) exprNode()                {}
func (e *NewURLSearchParams) exprNode()    {}
func (e *NewFormData) exprNode()           {}
func (e *NewArrayBuffer) exprNode()        {}
func (e *NewTypedArray) exprNode()         {}
func (e *NewBlob) exprNode()               {}
func (e *NewIntlNumberFormat) exprNode()   {}
func (e *NewIntlDateTimeFormat) exprNode() {}
func (e *NewIntlCollator) exprNode()       {}
func (e *JSONParse) exprNode()             {}
func (e *JSONStringify) exprNode()         {}
func (e *ObjectKeys) exprNode()            {}
func (e *ObjectValues) exprNode()          {}
func (e *ObjectEntries) exprNode()         {}
func (e *ObjectAssign) exprNode()          {}
func (e *ArrayIsArray) exprNode()          {}
func (e *ArrayFrom) exprNode()             {}
func (e *ArrayOf) exprNode()               {}
func (e *PromiseResolve) exprNode()        {}
func (e *PromiseReject) exprNode()         {}
func (e *PromiseAll) exprNode()            {}
func (e *PromiseRace) exprNode()           {}
func (e *SetTimeout) exprNode()            {}
func (e *SetInterval) exprNode()           {}
func (e *ClearTimeout) exprNode()          {}
func (e *ClearInterval) exprNode()         {}
func (e *QueueMicrotask) exprNode()        {}
func (e *RequestAnimationFrame) exprNode() {}
func (e *ConsoleCall) exprNode()           {}
func (e *ParseIntCall) exprNode()          {}
func (e *ParseFloatCall) exprNode()        {}
func (e *IsNaNCall) exprNode()             {}
func (e *IsFiniteCall) exprNode()          {}
func (e *NumberCtor) exprNode()            {}
func (e *StringCtor) exprNode()            {}
func (e *BooleanCtor) exprNode()           {}
func (e *SymbolCall) exprNode()            {}
func (e *EncodeURIComponent) exprNode()    {}
func (e *DecodeURIComponent) exprNode()    {}
func (e *EncodeURI) exprNode()             {}
func (e *DecodeURI) exprNode()             {}
func (e *BtoaCall) exprNode()              {}
func (e *AtobCall) exprNode()              {}
func (e *StorageCall) exprNode()           {}
func (e *DocumentCall) exprNode()          {}

func (s *DeclStmt) Kind() string   { return "DeclStmt" }
func (s *AssignStmt) Kind() string { return "AssignStmt" }
func (s *ExprStmt) Kind() string   { return "ExprStmt" }
func (s *IfStmt) Kind() string     { return "IfStmt" }
func (s *WhileStmt) Kind() string  { return "WhileStmt" }
func (s *ForStmt) Kind() string    { return "ForStmt" }
func (s *ReturnStmt) Kind() string { return "ReturnStmt" }
func (s *BlockStmt) Kind() string  { return "BlockStmt" }

func (s *DeclStmt) stmtNode()   {}
func (s *AssignStmt) stmtNode() {}
func (s *ExprStmt) stmtNode()   {}
func (s *IfStmt) stmtNode()     {}
func (s *WhileStmt) stmtNode()  {}
func (s *ForStmt) stmtNode()    {}
func (s *ReturnStmt) stmtNode() {}
func (s *BlockStmt) stmtNode()  {}
