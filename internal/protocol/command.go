package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const CmdSetActivity = "SET_ACTIVITY"

// Command is the envelope for one client->peer request.
type Command struct {
	Cmd   string       `json:"cmd"`
	Args  ActivityArgs `json:"args"`
	Nonce string       `json:"nonce"`
}

// ActivityArgs binds a presence value to the process that owns it. Activity
// is opaque here; it only needs to be JSON-serializable.
type ActivityArgs struct {
	PID      int `json:"pid"`
	Activity any `json:"activity"`
}

// EncodeSetActivity builds a SET_ACTIVITY payload for pid carrying activity.
// Each call gets a fresh nonce so responses can be correlated.
func EncodeSetActivity(pid int, activity any) ([]byte, error) {
	cmd := Command{
		Cmd:   CmdSetActivity,
		Args:  ActivityArgs{PID: pid, Activity: activity},
		Nonce: uuid.NewString(),
	}
	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", CmdSetActivity, err)
	}
	return payload, nil
}
