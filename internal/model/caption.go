package model

// ResponseType is the tone a caption is written in.
type ResponseType string

const (
	ResponseFunny         ResponseType = "funny"
	ResponseFormal        ResponseType = "formal"
	ResponseCasual        ResponseType = "casual"
	ResponseInspirational ResponseType = "inspirational"
)

// ResponseTypes lists the accepted tones in display order.
var ResponseTypes = []ResponseType{ResponseFunny, ResponseFormal, ResponseCasual, ResponseInspirational}

// Valid reports whether t is one of the accepted tones.
func (t ResponseType) Valid() bool {
	_, ok := toneGuidance[t]
	return ok
}

// CaptionLength is the size class of a caption.
type CaptionLength string

const (
	LengthShort  CaptionLength = "short"
	LengthMedium CaptionLength = "medium"
	LengthLong   CaptionLength = "long"
)

// CaptionLengths lists the accepted size classes in display order.
var CaptionLengths = []CaptionLength{LengthShort, LengthMedium, LengthLong}

// Valid reports whether l is one of the accepted size classes.
func (l CaptionLength) Valid() bool {
	_, ok := lengthGuidance[l]
	return ok
}

// Client-facing messages. They are part of the HTTP contract.
const (
	MsgMissingPrompt       = "Missing or invalid prompt."
	MsgInvalidResponseType = "Invalid response type."
	MsgInvalidLength       = "Invalid caption length."
	MsgConfiguration       = "Server configuration error."
	MsgInvalidUpstream     = "Invalid response from AI service."
	MsgEmptyCaption        = "Generated caption was empty."
	MsgGenerationFailed    = "Failed to generate caption. Please try again later."
	MsgUnexpected          = "An unexpected error occurred."
	MsgBodyTooLarge        = "Request body too large."
)

// CaptionRequest is the body of POST /api/caption.
type CaptionRequest struct {
	Prompt        string        `json:"prompt"`
	ResponseType  ResponseType  `json:"responseType"`
	CaptionLength CaptionLength `json:"captionLength"`
}

// CaptionResponse carries either the generated caption or a short error message.
type CaptionResponse struct {
	Caption string `json:"caption,omitempty"`
	Error   string `json:"error,omitempty"`
}
