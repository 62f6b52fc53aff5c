package app

import (
	"errors"
	"fmt"

	"github.com/five82/linksaver/internal/linkapi"
)

// Op identifies a user-level operation for notices and logs.
type Op int

const (
	OpList Op = iota
	OpGet
	OpAddLink
	OpAddNote
	OpUpdate
	OpDelete
	OpShare
	OpSaveSettings
)

func (o Op) String() string {
	switch o {
	case OpList:
		return "list"
	case OpGet:
		return "get"
	case OpAddLink:
		return "add link"
	case OpAddNote:
		return "add note"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpShare:
		return "share"
	case OpSaveSettings:
		return "save settings"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

func (o Op) verb() string {
	switch o {
	case OpList:
		return "fetching items"
	case OpGet:
		return "fetching item"
	case OpAddLink, OpShare:
		return "saving link"
	case OpAddNote:
		return "saving note"
	case OpUpdate:
		return "updating item"
	case OpDelete:
		return "deleting item"
	case OpSaveSettings:
		return "saving settings"
	default:
		return o.String()
	}
}

func (o Op) success() string {
	switch o {
	case OpAddLink, OpShare:
		return "Link saved"
	case OpAddNote:
		return "Note saved"
	case OpUpdate:
		return "Item updated"
	case OpDelete:
		return "Item deleted"
	case OpSaveSettings:
		return "Settings saved"
	default:
		return ""
	}
}

// ErrNothingToShare is returned when shared text is blank.
var ErrNothingToShare = errors.New("nothing to share")

// Notice is one user-visible message. A zero Notice means nothing to show.
type Notice struct {
	Op   Op
	Text string
	Kind linkapi.ErrorKind
	Err  error
}

// Empty reports whether there is nothing to display.
func (n Notice) Empty() bool {
	return n.Text == ""
}

// Failed reports whether the notice describes an error.
func (n Notice) Failed() bool {
	return n.Err != nil
}

// Describe maps the outcome of op to the single notice the user sees.
// Reads that succeed and canceled requests produce an empty notice.
func Describe(op Op, err error) Notice {
	n := Notice{Op: op, Kind: linkapi.Classify(err), Err: err}
	switch n.Kind {
	case linkapi.KindNone:
		n.Text = op.success()
	case linkapi.KindCanceled:
		n.Err = nil
	case linkapi.KindNotConfigured:
		n.Text = "Settings not configured"
	case linkapi.KindConflict:
		n.Text = "Link already exists"
	default:
		if errors.Is(err, ErrNothingToShare) {
			n.Text = "Nothing to share"
			break
		}
		n.Text = fmt.Sprintf("Error %s: %v", op.verb(), err)
	}
	return n
}
