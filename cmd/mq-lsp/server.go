package main

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/mq/workspace"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "mq"

// Server mirrors java/codebase's LSPServer: a thin glsp.Handler
// wrapper whose methods all delegate to a workspace.Workspace, the
// shared document-and-inspection store the CLI also uses.
type Server struct {
	ws      *workspace.Workspace
	handler protocol.Handler
	server  *glspserver.Server
	version string
}

func NewServer(version string) *Server {
	s := &Server{
		ws:      workspace.New(),
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentHover:      s.textDocumentHover,
	}

	s.server = glspserver.NewServer(&s.handler, lsName, false)
	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}
	capabilities.HoverProvider = &protocol.HoverOptions{}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) shutdown(ctx *glsp.Context) error { return nil }

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.ws.Update(path, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.ws.Update(path, whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.ws.Remove(path)
	return nil
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	pos, ok := s.ws.PositionAt(path, int(params.Position.Line)+1, int(params.Position.Character))
	if !ok {
		return nil, nil
	}
	suggestions, ok := s.ws.CompletionsAt(path, pos)
	if !ok {
		return nil, nil
	}

	var items []protocol.CompletionItem
	keywordKind := protocol.CompletionItemKindKeyword
	for _, kw := range suggestions.Keywords {
		label := kw.String()
		items = append(items, protocol.CompletionItem{Label: label, Kind: &keywordKind})
	}
	typeKind := protocol.CompletionItemKindTypeParameter
	for _, t := range suggestions.PrimitiveTypes {
		label := t
		items = append(items, protocol.CompletionItem{Label: label, Kind: &typeKind})
	}
	return items, nil
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	pos, ok := s.ws.PositionAt(path, int(params.Position.Line)+1, int(params.Position.Character))
	if !ok {
		return nil, nil
	}
	ttype, ok := s.ws.TypeAt(path, pos)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: fmt.Sprintf("%+v", ttype),
		},
	}, nil
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
