package keymap

// LoadDefaults registers the built-in global keymap — the Emacs-style
// bindings every keystorm session starts with before any user keymap
// is layered on top. Unlike the teacher's four mode-scoped keymaps
// (normal/insert/visual/command), this spec's keybinding resolver is
// modeless (spec §4.5), so there is exactly one keymap and its Mode is
// always "".
func LoadDefaults(r *Registry) error {
	return r.Register(DefaultGlobalKeymap())
}

// DefaultGlobalKeymap returns the built-in binding set, wired to the
// command names dispatcher/handlers registers (cursor, editor, window,
// file, macro, search, view).
func DefaultGlobalKeymap() *Keymap {
	return &Keymap{
		Name:   "default-global",
		Source: "default",
		Bindings: []Binding{
			// Cursor motion. Every modified or named key is wrapped in
			// <...>: key.ParseSequence only recognizes a bare multi-rune
			// token as a literal character-by-character chord (its vim
			// "dd"/"gg" case), so an un-bracketed "C-f" would parse as
			// the three runes C, -, f rather than Ctrl-F.
			{Keys: "<C-f>", Action: "forward-char", Description: "Move forward one character", Category: "Movement"},
			{Keys: "<C-b>", Action: "backward-char", Description: "Move backward one character", Category: "Movement"},
			{Keys: "<C-n>", Action: "next-line", Description: "Move to next line", Category: "Movement"},
			{Keys: "<C-p>", Action: "previous-line", Description: "Move to previous line", Category: "Movement"},
			{Keys: "<C-a>", Action: "move-beginning-of-line", Description: "Move to beginning of line", Category: "Movement"},
			{Keys: "<C-e>", Action: "move-end-of-line", Description: "Move to end of line", Category: "Movement"},
			{Keys: "<A-f>", Action: "forward-word", Description: "Move forward one word", Category: "Movement"},
			{Keys: "<A-b>", Action: "backward-word", Description: "Move backward one word", Category: "Movement"},
			{Keys: "<A-}>", Action: "forward-paragraph", Description: "Move forward one paragraph", Category: "Movement"},
			{Keys: "<A-{>", Action: "backward-paragraph", Description: "Move backward one paragraph", Category: "Movement"},
			{Keys: "<C-Home>", Action: "beginning-of-buffer", Description: "Move to buffer start", Category: "Movement"},
			{Keys: "<C-End>", Action: "end-of-buffer", Description: "Move to buffer end", Category: "Movement"},
			{Keys: "<Left>", Action: "backward-char", Description: "Move backward one character", Category: "Movement"},
			{Keys: "<Right>", Action: "forward-char", Description: "Move forward one character", Category: "Movement"},
			{Keys: "<Up>", Action: "previous-line", Description: "Move to previous line", Category: "Movement"},
			{Keys: "<Down>", Action: "next-line", Description: "Move to next line", Category: "Movement"},
			{Keys: "<Home>", Action: "move-beginning-of-line", Description: "Move to beginning of line", Category: "Movement"},
			{Keys: "<End>", Action: "move-end-of-line", Description: "Move to end of line", Category: "Movement"},

			// Marking and region
			{Keys: "<C-Space>", Action: "set-mark-command", Description: "Set the mark", Category: "Region"},
			{Keys: "<C-x><C-x>", Action: "exchange-point-and-mark", Description: "Swap point and mark", Category: "Region"},
			{Keys: "<C-g>", Action: "keyboard-quit", Description: "Cancel the current command", Category: "Region"},

			// Editing
			{Keys: "<Enter>", Action: "newline", Description: "Insert a newline", Category: "Editing"},
			{Keys: "<C-d>", Action: "delete-char", Description: "Delete the character after point", Category: "Editing"},
			{Keys: "<Backspace>", Action: "delete-backward-char", Description: "Delete the character before point", Category: "Editing"},
			{Keys: "<C-k>", Action: "kill-line", Description: "Kill to end of line", Category: "Editing"},
			{Keys: "<C-w>", Action: "kill-region", Description: "Kill the region", Category: "Editing"},
			{Keys: "<C-y>", Action: "yank", Description: "Yank the last kill", Category: "Editing"},
			{Keys: "<A-y>", Action: "yank-pop", Description: "Replace yank with earlier kill", Category: "Editing"},
			{Keys: "<C-x>u", Action: "undo", Description: "Undo the last change", Category: "Editing"},
			{Keys: "<C-x><C-u>", Action: "redo", Description: "Redo the last undone change", Category: "Editing"},

			// Files and buffers
			{Keys: "<C-x><C-f>", Action: "find-file", Description: "Open a file", Category: "Files"},
			{Keys: "<C-x><C-s>", Action: "save-buffer", Description: "Save the current buffer", Category: "Files"},
			{Keys: "<C-x><C-c>", Action: "quit", Description: "Exit the editor", Category: "Files"},

			// Windows
			{Keys: "<C-x>2", Action: "split-window-below", Description: "Split window horizontally", Category: "Windows"},
			{Keys: "<C-x>3", Action: "split-window-right", Description: "Split window vertically", Category: "Windows"},
			{Keys: "<C-x>o", Action: "other-window", Description: "Select the next window", Category: "Windows"},
			{Keys: "<C-x>0", Action: "delete-window", Description: "Delete the selected window", Category: "Windows"},
			{Keys: "<C-x>1", Action: "delete-other-windows", Description: "Delete all other windows", Category: "Windows"},
			{Keys: "<C-x>^", Action: "grow-window", Description: "Grow the selected window", Category: "Windows"},
			{Keys: "<C-x><C-z>", Action: "shrink-window", Description: "Shrink the selected window", Category: "Windows"},

			// Search
			{Keys: "<C-s>", Action: "isearch-forward", Description: "Incremental search forward", Category: "Search"},
			{Keys: "<C-r>", Action: "isearch-backward", Description: "Incremental search backward", Category: "Search"},

			// Macros
			{Keys: "<C-x>(", Action: "begin-macro", Description: "Start defining a keyboard macro", Category: "Macros"},
			{Keys: "<C-x>)", Action: "end-macro", Description: "Stop defining a keyboard macro", Category: "Macros"},
			{Keys: "<C-x>e", Action: "execute-macro", Description: "Replay the last keyboard macro", Category: "Macros"},

			// Scrolling
			{Keys: "<C-v>", Action: "scroll-up-command", Description: "Scroll down a page", Category: "View"},
			{Keys: "<A-v>", Action: "scroll-down-command", Description: "Scroll up a page", Category: "View"},
			{Keys: "<C-l>", Action: "recenter-top-bottom", Description: "Recenter point in the window", Category: "View"},
		},
	}
}
