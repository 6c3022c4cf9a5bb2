package transport

import (
	"encoding/json"
	"fmt"

	"text-editor-server/internal/errors"
	"text-editor-server/internal/models"
	"text-editor-server/internal/service"
)

// HandlerFunc decodes raw params and invokes one service operation.
type HandlerFunc func(params json.RawMessage) (interface{}, *models.ErrorDetail)

// Dispatcher maps method names onto service operations. Both the stdio and
// the HTTP transport route through the same table, so the wire surface
// cannot drift between them.
type Dispatcher struct {
	handlers map[string]HandlerFunc
}

// NewDispatcher builds the method table over a text editing service.
func NewDispatcher(svc service.TextEditingService) *Dispatcher {
	d := &Dispatcher{handlers: make(map[string]HandlerFunc)}

	d.handlers["get_text_file_contents"] = func(params json.RawMessage) (interface{}, *models.ErrorDetail) {
		var req models.GetTextFileContentsRequest
		if errDetail := decodeParams("get_text_file_contents", params, &req); errDetail != nil {
			return nil, errDetail
		}
		if len(req.Files) == 0 {
			return nil, errors.NewInvalidParamsError("Missing required argument: files", "")
		}
		return svc.ReadMultipleRanges(req.Files, req.Encoding)
	}
	d.handlers["patch_text_file_contents"] = func(params json.RawMessage) (interface{}, *models.ErrorDetail) {
		var req models.PatchTextFileContentsRequest
		if errDetail := decodeParams("patch_text_file_contents", params, &req); errDetail != nil {
			return nil, errDetail
		}
		return svc.PatchFileContents(req)
	}
	d.handlers["create_text_file"] = func(params json.RawMessage) (interface{}, *models.ErrorDetail) {
		var req models.CreateTextFileRequest
		if errDetail := decodeParams("create_text_file", params, &req); errDetail != nil {
			return nil, errDetail
		}
		return svc.CreateTextFile(req)
	}
	d.handlers["append_text_file_contents"] = func(params json.RawMessage) (interface{}, *models.ErrorDetail) {
		var req models.AppendTextFileContentsRequest
		if errDetail := decodeParams("append_text_file_contents", params, &req); errDetail != nil {
			return nil, errDetail
		}
		return svc.AppendTextFileContents(req)
	}
	d.handlers["insert_text_file_contents"] = func(params json.RawMessage) (interface{}, *models.ErrorDetail) {
		var req models.InsertTextFileContentsRequest
		if errDetail := decodeParams("insert_text_file_contents", params, &req); errDetail != nil {
			return nil, errDetail
		}
		return svc.InsertTextFileContents(req)
	}
	d.handlers["delete_text_file_contents"] = func(params json.RawMessage) (interface{}, *models.ErrorDetail) {
		var req models.DeleteTextFileContentsRequest
		if errDetail := decodeParams("delete_text_file_contents", params, &req); errDetail != nil {
			return nil, errDetail
		}
		return svc.DeleteTextFileContents(req)
	}
	d.handlers["append_text_file_from_path"] = func(params json.RawMessage) (interface{}, *models.ErrorDetail) {
		var req models.AppendTextFileFromPathRequest
		if errDetail := decodeParams("append_text_file_from_path", params, &req); errDetail != nil {
			return nil, errDetail
		}
		return svc.AppendTextFileFromPath(req)
	}
	d.handlers["append_text_file_from_path_batch"] = func(params json.RawMessage) (interface{}, *models.ErrorDetail) {
		var req models.AppendTextFileFromPathBatchRequest
		if errDetail := decodeParams("append_text_file_from_path_batch", params, &req); errDetail != nil {
			return nil, errDetail
		}
		return svc.AppendTextFileFromPathBatch(req)
	}
	d.handlers["explore_directory_contents"] = func(params json.RawMessage) (interface{}, *models.ErrorDetail) {
		var req models.ExploreDirectoryContentsRequest
		if errDetail := decodeParams("explore_directory_contents", params, &req); errDetail != nil {
			return nil, errDetail
		}
		return svc.ExploreDirectoryContents(req)
	}
	d.handlers["peek_text_file_contents"] = func(params json.RawMessage) (interface{}, *models.ErrorDetail) {
		var req models.PeekTextFileContentsRequest
		if errDetail := decodeParams("peek_text_file_contents", params, &req); errDetail != nil {
			return nil, errDetail
		}
		return svc.PeekTextFileContents(req)
	}

	return d
}

// Methods returns the registered method names.
func (d *Dispatcher) Methods() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	return names
}

// Dispatch routes one call. An unknown method yields a method-not-found
// error detail.
func (d *Dispatcher) Dispatch(method string, params json.RawMessage) (interface{}, *models.ErrorDetail) {
	handler, ok := d.handlers[method]
	if !ok {
		return nil, errors.NewMethodNotFoundError(method)
	}
	return handler(params)
}

func decodeParams(method string, params json.RawMessage, dst interface{}) *models.ErrorDetail {
	if len(params) == 0 {
		return errors.NewInvalidParamsError(fmt.Sprintf("Missing params for %s", method), "")
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return errors.NewInvalidParamsError(fmt.Sprintf("Invalid params for %s: %v", method, err), "")
	}
	return nil
}
