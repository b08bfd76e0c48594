// Package popup renders a floating completion list anchored near an editor
// caret.
//
// The host owns a Container's lifecycle: Create it, attach it to a Document,
// call Render on every keystroke or candidate change, and Destroy it on
// dismissal. Render places the container with Place, waits for pending
// candidates without blocking the caller, and mounts a virtualized ListView.
//
// All coordinates are terminal cells relative to the Document's top-left.
package popup
