package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"

	"github.com/jarredhawkins/yardgen-lsp/internal/config"
	"github.com/jarredhawkins/yardgen-lsp/internal/snippet"
	"github.com/jarredhawkins/yardgen-lsp/internal/yard"
)

// Server implements the LSP server
type Server struct {
	conn      jsonrpc2.Conn
	documents *DocumentStore
	settings  *config.Store
	generator *yard.Generator
	logger    *zap.Logger

	// set from client capabilities in initialize
	snippetEdits bool

	// closed by the exit notification
	exited   chan struct{}
	exitOnce sync.Once
}

// NewServer creates a new LSP server
func NewServer(gen *yard.Generator, settings *config.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		documents: NewDocumentStore(),
		settings:  settings,
		generator: gen,
		logger:    logger,
		exited:    make(chan struct{}),
	}
}

// Serve starts the LSP server on the given reader/writer
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stream := jsonrpc2.NewStream(&readWriteCloser{in, out})
	s.conn = jsonrpc2.NewConn(stream)

	// Requests run off the read loop so executeCommand can wait on the
	// client's workspace/applyEdit response.
	s.conn.Go(ctx, jsonrpc2.AsyncHandler(s.handler))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.exited:
		s.logger.Info("exit received, closing connection")
		return s.conn.Close()
	case <-s.conn.Done():
		return s.conn.Err()
	}
}

func (s *Server) handler(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Debug("LSP request", zap.String("method", req.Method()))

	switch req.Method() {
	case "initialize":
		return s.handleInitialize(ctx, reply, req)
	case "initialized":
		return reply(ctx, nil, nil)
	case "shutdown":
		return reply(ctx, nil, nil)
	case "exit":
		s.exitOnce.Do(func() { close(s.exited) })
		return reply(ctx, nil, nil)
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, reply, req)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, reply, req)
	case "textDocument/didClose":
		return s.handleDidClose(ctx, reply, req)
	case "textDocument/codeAction":
		return s.handleCodeAction(ctx, reply, req)
	case "workspace/executeCommand":
		return s.handleExecuteCommand(ctx, reply, req)
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(ctx, reply, req)
	default:
		// Method not found
		return reply(ctx, nil, &jsonrpc2.Error{
			Code:    jsonrpc2.MethodNotFound,
			Message: "method not supported: " + req.Method(),
		})
	}
}

func invalidParams(err error) *jsonrpc2.Error {
	return &jsonrpc2.Error{
		Code:    jsonrpc2.InvalidParams,
		Message: err.Error(),
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, invalidParams(err))
	}

	if ws := params.Capabilities.Workspace; ws != nil && ws.WorkspaceEdit != nil {
		s.snippetEdits = ws.WorkspaceEdit.SnippetEditSupport
	}
	if len(params.InitializationOptions) > 0 {
		if err := s.applyClientSettings(params.InitializationOptions); err != nil {
			s.logger.Warn("ignoring initializationOptions", zap.Error(err))
		}
	}
	s.logger.Info("client initialized",
		zap.String("root", params.RootURI),
		zap.Bool("snippetEdits", s.snippetEdits))

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
			},
			CodeActionProvider: &CodeActionOptions{
				CodeActionKinds: []string{CodeActionKindSource},
			},
			ExecuteCommandProvider: &ExecuteCommandOptions{
				Commands: []string{CommandGenerate},
			},
		},
		ServerInfo: &ServerInfo{
			Name:    "yardgen-lsp",
			Version: "0.1.0",
		},
	}
	return reply(ctx, result, nil)
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}

	doc := params.TextDocument
	s.documents.Open(doc.URI, doc.LanguageID, doc.Version, doc.Text)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}

	if len(params.ContentChanges) > 0 {
		// Full sync mode - just take the last content
		s.documents.Update(params.TextDocument.URI, params.TextDocument.Version,
			params.ContentChanges[len(params.ContentChanges)-1].Text)
	}
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}

	s.documents.Close(params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChangeConfiguration(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidChangeConfigurationParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	if err := s.applyClientSettings(params.Settings); err != nil {
		s.logger.Warn("ignoring configuration change", zap.Error(err))
	}
	return reply(ctx, nil, nil)
}

// applyClientSettings accepts either bare settings or settings nested under "yardgen"
func (s *Server) applyClientSettings(raw json.RawMessage) error {
	var nested struct {
		Yardgen *config.Override `json:"yardgen"`
	}
	if err := json.Unmarshal(raw, &nested); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	if nested.Yardgen != nil {
		s.settings.SetOverride(*nested.Yardgen)
		return nil
	}

	var flat config.Override
	if err := json.Unmarshal(raw, &flat); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	s.settings.SetOverride(flat)
	return nil
}

func (s *Server) handleCodeAction(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params CodeActionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, invalidParams(err))
	}

	uri := params.TextDocument.URI
	doc, ok := s.getDocument(uri)
	if !ok || !s.isRuby(doc) {
		return reply(ctx, []CodeAction{}, nil)
	}

	// Only offer the action when something on the line can be documented
	line := lineText(doc.Content, int(params.Range.Start.Line))
	constructs, _ := s.generator.Registry().MatchAll(line)
	if len(constructs) == 0 {
		return reply(ctx, []CodeAction{}, nil)
	}

	action := CodeAction{
		Title: "Generate YARD documentation",
		Kind:  CodeActionKindSource,
		Command: &Command{
			Title:   "Generate YARD documentation",
			Command: CommandGenerate,
			Arguments: []interface{}{
				GenerateArgs{URI: uri, Ranges: []Range{params.Range}},
			},
		},
	}
	return reply(ctx, []CodeAction{action}, nil)
}

func (s *Server) handleExecuteCommand(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params ExecuteCommandParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, invalidParams(err))
	}
	if params.Command != CommandGenerate {
		return reply(ctx, nil, &jsonrpc2.Error{
			Code:    jsonrpc2.InvalidParams,
			Message: "unknown command: " + params.Command,
		})
	}
	if len(params.Arguments) == 0 {
		return reply(ctx, nil, invalidParams(fmt.Errorf("%s requires an argument", CommandGenerate)))
	}

	var args GenerateArgs
	if err := json.Unmarshal(params.Arguments[0], &args); err != nil {
		return reply(ctx, nil, invalidParams(err))
	}

	edit, diags, err := s.generate(args)
	if err != nil {
		return reply(ctx, nil, err)
	}
	for _, d := range diags {
		s.showMessage(ctx, MessageTypeWarning, d.Error())
	}
	if edit == nil {
		return reply(ctx, nil, nil)
	}

	var result ApplyWorkspaceEditResult
	if _, err := s.conn.Call(ctx, "workspace/applyEdit", edit, &result); err != nil {
		s.logger.Error("workspace/applyEdit failed", zap.Error(err))
		return reply(ctx, nil, err)
	}
	if !result.Applied {
		s.logger.Warn("client rejected edit", zap.String("reason", result.FailureReason))
	}
	return reply(ctx, nil, nil)
}

// generate runs the generator over the command arguments and builds the
// workspace edit. A nil edit means there was nothing to document.
func (s *Server) generate(args GenerateArgs) (*ApplyWorkspaceEditParams, []error, error) {
	doc, ok := s.getDocument(args.URI)
	if !ok {
		return nil, nil, &jsonrpc2.Error{
			Code:    jsonrpc2.InvalidParams,
			Message: "unknown document: " + args.URI,
		}
	}

	buf := yard.NewTextBuffer(doc.Content, uriToPath(doc.URI), doc.LanguageID)
	sels := make([]yard.Selection, 0, len(args.Ranges))
	for _, r := range args.Ranges {
		sels = append(sels, yard.Selection{
			Start: offsetAt(doc.Content, r.Start),
			End:   offsetAt(doc.Content, r.End),
		})
	}

	res := s.generator.Generate(buf, sels, s.settings.Snapshot())
	if len(res.Edits) == 0 {
		return nil, res.Diagnostics, nil
	}

	edits := make([]interface{}, 0, len(res.Edits))
	for _, e := range res.Edits {
		rng := Range{
			Start: positionAt(doc.Content, e.Start),
			End:   positionAt(doc.Content, e.End),
		}
		edits = append(edits, s.textEdit(rng, e.Snippet))
	}

	var version *int
	if s.documents.IsOpen(doc.URI) {
		v := doc.Version
		version = &v
	}
	return &ApplyWorkspaceEditParams{
		Label: "Generate YARD documentation",
		Edit: WorkspaceEdit{
			DocumentChanges: []TextDocumentEdit{{
				TextDocument: OptionalVersionedTextDocumentIdentifier{
					TextDocumentIdentifier: TextDocumentIdentifier{URI: doc.URI},
					Version:                version,
				},
				Edits: edits,
			}},
		},
	}, res.Diagnostics, nil
}

// textEdit sends snippets to clients that can take them and plain text otherwise
func (s *Server) textEdit(rng Range, text string) interface{} {
	if s.snippetEdits {
		return SnippetTextEdit{
			Range:   rng,
			Snippet: StringValue{Kind: "snippet", Value: text},
		}
	}
	return TextEdit{Range: rng, NewText: snippet.Expand(text)}
}

func (s *Server) showMessage(ctx context.Context, typ MessageType, msg string) {
	if s.conn == nil {
		return
	}
	if err := s.conn.Notify(ctx, "window/showMessage", ShowMessageParams{Type: typ, Message: msg}); err != nil {
		s.logger.Warn("failed to show message", zap.Error(err))
	}
}

func (s *Server) isRuby(doc Document) bool {
	return yard.NewTextBuffer(doc.Content, uriToPath(doc.URI), doc.LanguageID).IsRuby(0)
}

func (s *Server) getDocument(uri string) (Document, bool) {
	// Check open documents first
	if doc, ok := s.documents.Get(uri); ok {
		return doc, true
	}

	// Fall back to reading from disk
	path := uriToPath(uri)
	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("failed to read file", zap.String("path", path), zap.Error(err))
		return Document{}, false
	}
	return Document{URI: uri, Content: string(content)}, true
}

// readWriteCloser wraps reader and writer into a ReadWriteCloser
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error {
	return nil
}
