package queue

import "encoding/json"

// MessageVersion is the current settle event schema version.
const MessageVersion = 1

// Message announces that a watched analysis reached a terminal status.
type Message struct {
	AnalysisID   string `json:"analysisId"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	RequestID    string `json:"requestId,omitempty"`
	SettledAt    string `json:"settledAt"`
	Version      int    `json:"version"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
