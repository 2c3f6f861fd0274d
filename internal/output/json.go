package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/branchdiff/internal/compare"
)

// JSONWriter outputs the run result as JSON.
type JSONWriter struct{}

type jsonFile struct {
	compare.FileResult
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type jsonResult struct {
	*compare.Result
	Files []jsonFile `json:"files"`
}

func (j *JSONWriter) Write(w io.Writer, result *compare.Result) error {
	out := jsonResult{Result: result, Files: make([]jsonFile, 0, len(result.Files))}
	for _, fr := range result.Files {
		jf := jsonFile{FileResult: fr, Status: Status(fr)}
		if fr.Err != nil {
			jf.Error = fr.Err.Error()
		}
		out.Files = append(out.Files, jf)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
