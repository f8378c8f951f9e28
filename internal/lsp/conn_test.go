package lsp

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"go.lsp.dev/jsonrpc2"
)

// editorClient is the editor end of a pipe to a running Server. It records
// the notifications and edit requests the server sends.
type editorClient struct {
	conn     jsonrpc2.Conn
	messages chan ShowMessageParams
	edits    chan appliedEdit
}

// appliedEdit decodes a workspace/applyEdit request with plain text edits
type appliedEdit struct {
	Label string `json:"label"`
	Edit  struct {
		DocumentChanges []struct {
			TextDocument OptionalVersionedTextDocumentIdentifier `json:"textDocument"`
			Edits        []TextEdit                              `json:"edits"`
		} `json:"documentChanges"`
	} `json:"edit"`
}

func startServer(t *testing.T, s *Server) (*editorClient, <-chan error) {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, serverSide, serverSide) }()

	c := &editorClient{
		conn:     jsonrpc2.NewConn(jsonrpc2.NewStream(clientSide)),
		messages: make(chan ShowMessageParams, 8),
		edits:    make(chan appliedEdit, 8),
	}
	c.conn.Go(ctx, func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case "window/showMessage":
			var p ShowMessageParams
			if err := json.Unmarshal(req.Params(), &p); err != nil {
				return reply(ctx, nil, err)
			}
			c.messages <- p
			return reply(ctx, nil, nil)
		case "workspace/applyEdit":
			var p appliedEdit
			if err := json.Unmarshal(req.Params(), &p); err != nil {
				return reply(ctx, nil, err)
			}
			c.edits <- p
			return reply(ctx, ApplyWorkspaceEditResult{Applied: true}, nil)
		default:
			return reply(ctx, nil, nil)
		}
	})

	t.Cleanup(func() {
		cancel()
		clientSide.Close()
		serverSide.Close()
	})
	return c, done
}

func (c *editorClient) initialize(t *testing.T) {
	t.Helper()
	var result InitializeResult
	if _, err := c.conn.Call(context.Background(), "initialize", InitializeParams{}, &result); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
}

func TestExecuteCommandOverConnection(t *testing.T) {
	s := newTestServer()
	c, _ := startServer(t, s)
	ctx := context.Background()
	c.initialize(t)

	uri := "file:///project/model.rb"
	err := c.conn.Notify(ctx, "textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: uri, LanguageID: "ruby", Version: 3, Text: "attr_internal :cache\nFOO = 1\n"},
	})
	if err != nil {
		t.Fatalf("didOpen failed: %v", err)
	}

	args, err := json.Marshal(GenerateArgs{
		URI: uri,
		Ranges: []Range{
			{Start: Position{Line: 0}, End: Position{Line: 0}},
			{Start: Position{Line: 1}, End: Position{Line: 1}},
		},
	})
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}
	_, err = c.conn.Call(ctx, "workspace/executeCommand", ExecuteCommandParams{
		Command:   CommandGenerate,
		Arguments: []json.RawMessage{args},
	}, nil)
	if err != nil {
		t.Fatalf("executeCommand failed: %v", err)
	}

	select {
	case msg := <-c.messages:
		if msg.Type != MessageTypeWarning {
			t.Errorf("expected a warning, got type %d", msg.Type)
		}
		if msg.Message != `line 1: unknown attribute: "attr_internal"` {
			t.Errorf("unexpected message %q", msg.Message)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no showMessage received")
	}

	var edit appliedEdit
	select {
	case edit = <-c.edits:
	case <-time.After(2 * time.Second):
		t.Fatal("no applyEdit received")
	}
	if len(c.edits) != 0 {
		t.Errorf("expected one applyEdit per command, got %d more", len(c.edits))
	}

	changes := edit.Edit.DocumentChanges
	if len(changes) != 1 || len(changes[0].Edits) != 1 {
		t.Fatalf("expected one text edit, got %+v", changes)
	}
	if changes[0].TextDocument.URI != uri {
		t.Errorf("expected edit for %s, got %s", uri, changes[0].TextDocument.URI)
	}
	if v := changes[0].TextDocument.Version; v == nil || *v != 3 {
		t.Errorf("expected version 3, got %v", v)
	}
	te := changes[0].Edits[0]
	wantRange := Range{Start: Position{Line: 1}, End: Position{Line: 1}}
	if te.Range != wantRange {
		t.Errorf("expected an insert above FOO, got %+v", te.Range)
	}
	if te.NewText != "# @return [<type>] <description>\n" {
		t.Errorf("unexpected text %q", te.NewText)
	}
}

func TestExitEndsServe(t *testing.T) {
	s := newTestServer()
	c, done := startServer(t, s)
	ctx := context.Background()
	c.initialize(t)

	if _, err := c.conn.Call(ctx, "shutdown", nil, nil); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if err := c.conn.Notify(ctx, "exit", nil); err != nil {
		t.Fatalf("exit failed: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected Serve to return cleanly, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after exit")
	}
}
