/*
Package server implements msgpack IPC for word prediction.

Clients write a stream of msgpack-encoded requests to stdin and read one
msgpack-encoded response per request from stdout. Logs never go to stdout.

A prediction request carries the typed prefix and, optionally, the previous
word. When the previous word is present and the server has a bigram model,
completions come from the words seen after it:

	{"id": "req_001", "p": "hap", "ctx": "a", "l": 5}

The response lists suggestions ordered by score, with their 1-based rank:

	{"id": "req_001", "s": [{"w": "happy", "r": 1, "f": 12}], "c": 1, "t": 41}

"t" is the time spent predicting, in microseconds. Failures are reported as

	{"id": "req_001", "e": "empty prefix", "c": 400}

A request with "action" set to "stats" returns model sizes instead.
*/
package server

// PredictionRequest asks for completions of Prefix.
type PredictionRequest struct {
	ID      string `msgpack:"id"`
	Prefix  string `msgpack:"p"`
	Context string `msgpack:"ctx,omitempty"`
	Limit   int    `msgpack:"l,omitempty"`
	Action  string `msgpack:"action,omitempty"` // "" or "predict", "stats"
}

// PredictionSuggestion is one ranked completion.
type PredictionSuggestion struct {
	Word  string `msgpack:"w"`
	Rank  uint16 `msgpack:"r"`
	Score uint32 `msgpack:"f"`
}

// PredictionResponse answers a PredictionRequest.
type PredictionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []PredictionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// StatsResponse reports the loaded model sizes.
type StatsResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Words    int    `msgpack:"words"`
	Buckets  int    `msgpack:"buckets"`
	Contexts int    `msgpack:"contexts"`
	Requests int    `msgpack:"requests"`
}

// PredictionError holds basic error information for a failed request
type PredictionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
