package app

import (
	"log"

	"github.com/pstuifzand/tui-treelist/internal/model"
	"github.com/pstuifzand/tui-treelist/internal/socket"
)

// handleRemoteMessage applies a command received on the Unix socket
func (a *App) handleRemoteMessage(msg socket.Message) {
	log.Printf("Received socket message: command=%s group=%s title=%s", msg.Command, msg.Group, msg.Title)

	switch msg.Command {
	case socket.CommandAddItem:
		header := a.findGroup(msg.Group)
		if header == nil {
			header = a.tree.AddHeader(msg.Group)
		}
		a.tree.AddChild(header, msg.Title, msg.Subtitle)
		a.markDirty()
		a.messages.Addf("Added %s to %s", msg.Title, msg.Group)

	case socket.CommandClearGroup:
		header := a.findGroup(msg.Group)
		if header == nil || !a.tree.ClearChildren(header) {
			log.Printf("Nothing to clear in group %s", msg.Group)
			return
		}
		a.markDirty()
		a.messages.Addf("Cleared %s", msg.Group)

	case socket.CommandSelect:
		n := a.findItem(msg.Group, msg.Title)
		if n == nil {
			log.Printf("No item %s in group %s", msg.Title, msg.Group)
			a.messages.Addf("No item %s in %s", msg.Title, msg.Group)
			return
		}
		a.tree.Expand(n.Parent())
		a.engine.SelectSingle(n)

	default:
		log.Printf("Unknown socket command: %s", msg.Command)
	}
}

func (a *App) findGroup(title string) *model.Node {
	for _, h := range a.tree.Headers() {
		if h.Title == title {
			return h
		}
	}
	return nil
}

func (a *App) findItem(group, title string) *model.Node {
	header := a.findGroup(group)
	if header == nil {
		return nil
	}
	for _, c := range header.Children() {
		if c.Title == title {
			return c
		}
	}
	return nil
}
