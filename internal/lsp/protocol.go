package lsp

import (
	"encoding/json"
	"net/url"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// LSP Protocol types - minimal set for code actions and commands

// TextDocumentSyncKind defines how text document changes are synced
type TextDocumentSyncKind int

const (
	TextDocumentSyncKindNone        TextDocumentSyncKind = 0
	TextDocumentSyncKindFull        TextDocumentSyncKind = 1
	TextDocumentSyncKindIncremental TextDocumentSyncKind = 2
)

// MessageType for window/showMessage
type MessageType int

const (
	MessageTypeError   MessageType = 1
	MessageTypeWarning MessageType = 2
	MessageTypeInfo    MessageType = 3
	MessageTypeLog     MessageType = 4
)

// CommandGenerate is the workspace command that inserts YARD documentation
const CommandGenerate = "yardgen.generate"

// CodeActionKindSource is the kind we advertise our action under
const CodeActionKindSource = "source"

// Position in a text document. Character counts UTF-16 code units.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range in a text document
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// TextDocumentIdentifier identifies a text document
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// VersionedTextDocumentIdentifier identifies a versioned text document
type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version int `json:"version"`
}

// OptionalVersionedTextDocumentIdentifier has a null version for unopened documents
type OptionalVersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version *int `json:"version"`
}

// TextDocumentItem represents an open text document
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

// WorkspaceEditClientCapabilities is the part of the client capabilities we read
type WorkspaceEditClientCapabilities struct {
	DocumentChanges    bool `json:"documentChanges,omitempty"`
	SnippetEditSupport bool `json:"snippetEditSupport,omitempty"`
}

// WorkspaceClientCapabilities is the workspace section of the client capabilities
type WorkspaceClientCapabilities struct {
	ApplyEdit     bool                             `json:"applyEdit,omitempty"`
	WorkspaceEdit *WorkspaceEditClientCapabilities `json:"workspaceEdit,omitempty"`
}

// ClientCapabilities advertised in initialize
type ClientCapabilities struct {
	Workspace *WorkspaceClientCapabilities `json:"workspace,omitempty"`
}

// InitializeParams for the initialize request
type InitializeParams struct {
	RootURI               string             `json:"rootUri,omitempty"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	InitializationOptions json.RawMessage    `json:"initializationOptions,omitempty"`
}

// TextDocumentSyncOptions defines text document sync options
type TextDocumentSyncOptions struct {
	OpenClose bool                 `json:"openClose,omitempty"`
	Change    TextDocumentSyncKind `json:"change,omitempty"`
}

// CodeActionOptions advertises code action support
type CodeActionOptions struct {
	CodeActionKinds []string `json:"codeActionKinds,omitempty"`
}

// ExecuteCommandOptions lists the commands the server executes
type ExecuteCommandOptions struct {
	Commands []string `json:"commands"`
}

// ServerCapabilities defines what the server can do
type ServerCapabilities struct {
	TextDocumentSync       *TextDocumentSyncOptions `json:"textDocumentSync,omitempty"`
	CodeActionProvider     *CodeActionOptions       `json:"codeActionProvider,omitempty"`
	ExecuteCommandProvider *ExecuteCommandOptions   `json:"executeCommandProvider,omitempty"`
}

// ServerInfo contains information about the server
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeResult is the result of the initialize request
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// DidOpenTextDocumentParams for textDocument/didOpen
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentContentChangeEvent describes changes to a text document
type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

// DidChangeTextDocumentParams for textDocument/didChange
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// DidCloseTextDocumentParams for textDocument/didClose
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// DidChangeConfigurationParams for workspace/didChangeConfiguration
type DidChangeConfigurationParams struct {
	Settings json.RawMessage `json:"settings"`
}

// CodeActionParams for textDocument/codeAction
type CodeActionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
}

// Command references a command on the server
type Command struct {
	Title     string        `json:"title"`
	Command   string        `json:"command"`
	Arguments []interface{} `json:"arguments,omitempty"`
}

// CodeAction offered to the client
type CodeAction struct {
	Title   string   `json:"title"`
	Kind    string   `json:"kind,omitempty"`
	Command *Command `json:"command,omitempty"`
}

// ExecuteCommandParams for workspace/executeCommand
type ExecuteCommandParams struct {
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
}

// GenerateArgs is the argument of the yardgen.generate command.
// Each range is one cursor or selection.
type GenerateArgs struct {
	URI    string  `json:"uri"`
	Ranges []Range `json:"ranges"`
}

// TextEdit replaces a range with plain text
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// StringValue carries snippet text
type StringValue struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// SnippetTextEdit replaces a range with a snippet (LSP 3.18)
type SnippetTextEdit struct {
	Range   Range       `json:"range"`
	Snippet StringValue `json:"snippet"`
}

// TextDocumentEdit groups the edits for one document
type TextDocumentEdit struct {
	TextDocument OptionalVersionedTextDocumentIdentifier `json:"textDocument"`
	Edits        []interface{}                           `json:"edits"`
}

// WorkspaceEdit is the payload of workspace/applyEdit
type WorkspaceEdit struct {
	DocumentChanges []TextDocumentEdit `json:"documentChanges"`
}

// ApplyWorkspaceEditParams for workspace/applyEdit
type ApplyWorkspaceEditParams struct {
	Label string        `json:"label,omitempty"`
	Edit  WorkspaceEdit `json:"edit"`
}

// ApplyWorkspaceEditResult is the client's answer to workspace/applyEdit
type ApplyWorkspaceEditResult struct {
	Applied       bool   `json:"applied"`
	FailureReason string `json:"failureReason,omitempty"`
}

// ShowMessageParams for window/showMessage
type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// Helper functions

// uriToPath converts a file:// URI to a file path
func uriToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	if u, err := url.Parse(uri); err == nil {
		return u.Path
	}
	return strings.TrimPrefix(uri, "file://")
}

// lineText returns the given 0-indexed line without its line ending
func lineText(content string, line int) string {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[line], "\r")
}

// offsetAt converts an LSP position to a byte offset in content.
// Positions past the end of a line clamp to the line end.
func offsetAt(content string, pos Position) int {
	offset := 0
	for line := uint32(0); line < pos.Line; line++ {
		i := strings.IndexByte(content[offset:], '\n')
		if i < 0 {
			return len(content)
		}
		offset += i + 1
	}

	units := uint32(0)
	for offset < len(content) && units < pos.Character {
		r, size := utf8.DecodeRuneInString(content[offset:])
		if r == '\n' || r == '\r' {
			break
		}
		units += uint32(utf16.RuneLen(r))
		offset += size
	}
	return offset
}

// positionAt converts a byte offset in content to an LSP position
func positionAt(content string, offset int) Position {
	if offset > len(content) {
		offset = len(content)
	}
	var pos Position
	lineStart := 0
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			pos.Line++
			lineStart = i + 1
		}
	}
	for _, r := range content[lineStart:offset] {
		pos.Character += uint32(utf16.RuneLen(r))
	}
	return pos
}
