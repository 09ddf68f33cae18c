package model

import (
	"fmt"
	"strings"
)

var toneGuidance = map[ResponseType]string{
	ResponseFunny:         "Humorous, witty, and playful language that would make someone laugh",
	ResponseFormal:        "Professional, sophisticated language appropriate for business or official contexts",
	ResponseCasual:        "Relaxed, conversational, everyday language as if talking to a friend",
	ResponseInspirational: "Uplifting, motivational language that inspires action or positive emotions",
}

var lengthGuidance = map[CaptionLength]string{
	LengthShort:  "1-2 concise sentences (15-25 words)",
	LengthMedium: "3-4 well-crafted sentences (40-60 words)",
	LengthLong:   "5-7 detailed sentences (80-120 words)",
}

// ToneGuidance returns the style line used for t, or "" when t is unknown.
func ToneGuidance(t ResponseType) string { return toneGuidance[t] }

// LengthGuidance returns the sentence and word-count target used for l, or "" when l is unknown.
func LengthGuidance(l CaptionLength) string { return lengthGuidance[l] }

const promptTemplate = `You are CaptionAI, a specialized caption generator. Follow these instructions precisely:

1. RESPONSE FORMAT: Provide ONLY the caption text in markdown format. Do not include any introductory text like "Here's a caption" or "Here are the results".

2. CAPTION TYPE: Generate a %s caption that is:
   - %s

3. CAPTION LENGTH: Generate a %s caption that is:
   - %s

4. CONTENT: Base your caption specifically on this subject: "%s"

5. MARKDOWN: Format the response using appropriate markdown styling (bold, italic, etc.) where it enhances readability.

Respond ONLY with the caption itself in markdown format, nothing else. Do not include examples of other styles or lengths in your response.`

// BuildPrompt renders the instruction sent upstream for req. The user prompt
// is embedded verbatim; req is expected to have passed Validate.
func BuildPrompt(req CaptionRequest) string {
	return fmt.Sprintf(promptTemplate,
		req.ResponseType, toneGuidance[req.ResponseType],
		req.CaptionLength, lengthGuidance[req.CaptionLength],
		req.Prompt,
	)
}

// joinValues renders enum values as a comma separated list.
func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

// ResponseTypeList returns the accepted tones as "funny,formal,...".
func ResponseTypeList() string { return joinValues(ResponseTypes) }

// CaptionLengthList returns the accepted size classes as "short,medium,long".
func CaptionLengthList() string { return joinValues(CaptionLengths) }
