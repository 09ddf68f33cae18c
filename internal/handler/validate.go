package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/thedevsaddam/govalidator"

	"github.com/vitormoschetta/captionai/internal/apperr"
	"github.com/vitormoschetta/captionai/internal/logger"
	"github.com/vitormoschetta/captionai/internal/model"
)

var (
	captionRules = govalidator.MapData{
		"responseType":  []string{"required", "in:" + model.ResponseTypeList()},
		"captionLength": []string{"required", "in:" + model.CaptionLengthList()},
	}
	captionMessages = govalidator.MapData{
		"responseType":  []string{"required:" + model.MsgInvalidResponseType, "in:" + model.MsgInvalidResponseType},
		"captionLength": []string{"required:" + model.MsgInvalidLength, "in:" + model.MsgInvalidLength},
	}
)

// decodeCaptionRequest reads the JSON body and applies the checks in order:
// prompt, then responseType, then captionLength. A body over the size limit
// is rejected with 413 before any check. A body that does not decode
// to an object has no prompt and fails the first check.
func decodeCaptionRequest(r *http.Request) (model.CaptionRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return model.CaptionRequest{}, apperr.TooLarge(model.MsgBodyTooLarge)
		}
		logger.FromContext(r.Context()).Debug("failed to read caption request body", "error", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	data := make(map[string]interface{})
	opts := govalidator.Options{
		Request:  r,
		Data:     &data,
		Rules:    captionRules,
		Messages: captionMessages,
	}
	errs := govalidator.New(opts).ValidateJSON()
	if decodeErr := errs.Get("_error"); decodeErr != "" {
		logger.FromContext(r.Context()).Debug("caption request body did not decode", "error", decodeErr)
	}

	prompt, ok := data["prompt"].(string)
	if !ok || prompt == "" {
		return model.CaptionRequest{}, apperr.BadRequest(model.MsgMissingPrompt)
	}

	responseType, ok := data["responseType"].(string)
	if !ok || errs.Get("responseType") != "" {
		return model.CaptionRequest{}, apperr.BadRequest(model.MsgInvalidResponseType)
	}

	captionLength, ok := data["captionLength"].(string)
	if !ok || errs.Get("captionLength") != "" {
		return model.CaptionRequest{}, apperr.BadRequest(model.MsgInvalidLength)
	}

	return model.CaptionRequest{
		Prompt:        prompt,
		ResponseType:  model.ResponseType(responseType),
		CaptionLength: model.CaptionLength(captionLength),
	}, nil
}
