// Package mcptool exposes caption generation as a Model Context Protocol tool.
package mcptool

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vitormoschetta/captionai/internal/apperr"
	"github.com/vitormoschetta/captionai/internal/model"
)

const ToolName = "generate_caption"

// CaptionGenerator is the part of the caption service the tool needs.
type CaptionGenerator interface {
	Generate(ctx context.Context, req model.CaptionRequest) (string, error)
}

// CaptionInput is the tool's argument object.
type CaptionInput struct {
	Prompt        string `json:"prompt" jsonschema:"subject the caption should describe"`
	ResponseType  string `json:"responseType" jsonschema:"tone of the caption: funny, formal, casual or inspirational"`
	CaptionLength string `json:"captionLength" jsonschema:"size of the caption: short, medium or long"`
}

// CaptionOutput is the tool's structured result.
type CaptionOutput struct {
	Caption string `json:"caption"`
}

type tool struct {
	captions CaptionGenerator
}

// NewServer returns an MCP server with the generate_caption tool registered.
func NewServer(captions CaptionGenerator, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "captionai", Version: version}, nil)
	t := &tool{captions: captions}
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Generate a markdown caption for a described subject in the requested tone and length.",
	}, t.generate)
	return server
}

// Handler serves server over the streamable HTTP transport.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

func (t *tool) generate(ctx context.Context, _ *mcp.CallToolRequest, in CaptionInput) (*mcp.CallToolResult, CaptionOutput, error) {
	caption, err := t.captions.Generate(ctx, model.CaptionRequest{
		Prompt:        in.Prompt,
		ResponseType:  model.ResponseType(in.ResponseType),
		CaptionLength: model.CaptionLength(in.CaptionLength),
	})
	if err != nil {
		_, msg := apperr.Public(err, model.MsgUnexpected)
		return nil, CaptionOutput{}, errors.New(msg)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: caption}},
	}, CaptionOutput{Caption: caption}, nil
}
