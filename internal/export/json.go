package export

import (
	"encoding/json"
	"io"
)

func writeJSON(w io.Writer, board *BoardExport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(board)
}
