package socket

// Message is a command sent to a running ttl instance
type Message struct {
	Command  string `json:"command"`
	Group    string `json:"group,omitempty"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Response is the server's reply to a Message
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Command types
const (
	CommandAddItem    = "add_item"    // add Title under Group, creating the group
	CommandClearGroup = "clear_group" // remove every item of Group
	CommandSelect     = "select"      // make the item Title of Group the only selection
)

// Validate checks that the fields a command needs are present
func (m Message) Validate() error {
	switch m.Command {
	case "":
		return errMissing("command")
	case CommandAddItem, CommandSelect:
		if m.Group == "" {
			return errMissing("group")
		}
		if m.Title == "" {
			return errMissing("title")
		}
	case CommandClearGroup:
		if m.Group == "" {
			return errMissing("group")
		}
	default:
		return &CommandError{Reason: "unknown command " + m.Command}
	}
	return nil
}

// CommandError reports an invalid message
type CommandError struct {
	Reason string
}

func (e *CommandError) Error() string {
	return e.Reason
}

func errMissing(field string) error {
	return &CommandError{Reason: "missing " + field + " field"}
}
