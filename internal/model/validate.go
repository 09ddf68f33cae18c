package model

import "github.com/vitormoschetta/captionai/internal/apperr"

// Validate applies the request rules in order and returns the first failure.
func (r CaptionRequest) Validate() error {
	if r.Prompt == "" {
		return apperr.BadRequest(MsgMissingPrompt)
	}
	if !r.ResponseType.Valid() {
		return apperr.BadRequest(MsgInvalidResponseType)
	}
	if !r.CaptionLength.Valid() {
		return apperr.BadRequest(MsgInvalidLength)
	}
	return nil
}
