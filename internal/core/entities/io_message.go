package entities

// RequestKind tags a CommandRequest variant.
type RequestKind string

const (
	ReqPromptText        RequestKind = "PromptForText"
	ReqPromptInt         RequestKind = "PromptForInt"
	ReqPromptBool        RequestKind = "PromptForBool"
	ReqPromptList        RequestKind = "PromptForList"
	ReqPromptSelect      RequestKind = "PromptForSelect"
	ReqPromptMultiSelect RequestKind = "PromptForMultiSelect"
	ReqLogTrace          RequestKind = "LogTrace"
	ReqLogDebug          RequestKind = "LogDebug"
	ReqLogInfo           RequestKind = "LogInfo"
	ReqLogWarn           RequestKind = "LogWarn"
	ReqLogError          RequestKind = "LogError"
	ReqPrint             RequestKind = "Print"
)

// CommandRequest is the runtime-to-driver half of the IO Driver Protocol
// wire. Exactly one CommandResponse answers each CommandRequest the runtime
// issues, except Log*/Print which have none.
type CommandRequest struct {
	Kind   RequestKind
	Prompt *PromptInfo // set for PromptFor* kinds
	Text   string      // set for Log*/Print kinds
}

// ResponseKind tags a CommandResponse variant.
type ResponseKind string

const (
	RespString  ResponseKind = "String"
	RespInteger ResponseKind = "Integer"
	RespBoolean ResponseKind = "Boolean"
	RespArray   ResponseKind = "Array"
	RespNone    ResponseKind = "None"
	RespAbort   ResponseKind = "Abort"
	RespError   ResponseKind = "Error"
)

// CommandResponse is the driver-to-runtime half of the IO Driver Protocol wire.
type CommandResponse struct {
	Kind    ResponseKind
	Str     string
	Int     int64
	Bool    bool
	Array   []Value
	ErrText string // set when Kind == RespError
}

func NewStringResponse(s string) CommandResponse   { return CommandResponse{Kind: RespString, Str: s} }
func NewIntegerResponse(i int64) CommandResponse    { return CommandResponse{Kind: RespInteger, Int: i} }
func NewBooleanResponse(b bool) CommandResponse     { return CommandResponse{Kind: RespBoolean, Bool: b} }
func NewArrayResponse(vs []Value) CommandResponse   { return CommandResponse{Kind: RespArray, Array: vs} }
func NewNoneResponse() CommandResponse              { return CommandResponse{Kind: RespNone} }
func NewAbortResponse() CommandResponse             { return CommandResponse{Kind: RespAbort} }
func NewErrorResponse(msg string) CommandResponse   { return CommandResponse{Kind: RespError, ErrText: msg} }
