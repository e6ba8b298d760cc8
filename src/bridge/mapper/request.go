package mapper

import (
	"encoding/json"

	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"go.lsp.dev/jsonrpc2"
)

func decodeParams(req jsonrpc2.Request, params interface{}) error {
	if err := json.Unmarshal(req.Params(), params); err != nil {
		return &errors.InvalidParamsError{Msg: "malformed params for " + req.Method(), Err: err}
	}
	return nil
}

// RequestToAttachRequest maps the parameters of debug/attach.
func RequestToAttachRequest(req jsonrpc2.Request) (*entity.AttachRequest, error) {
	params := entity.AttachRequest{}
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToSetBreakpointRequest maps the parameters of debug/setBreakpoint.
func RequestToSetBreakpointRequest(req jsonrpc2.Request) (*entity.SetBreakpointRequest, error) {
	params := entity.SetBreakpointRequest{}
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToSetExceptionBreakpointRequest maps the parameters of debug/setExceptionBreakpoint.
func RequestToSetExceptionBreakpointRequest(req jsonrpc2.Request) (*entity.SetExceptionBreakpointRequest, error) {
	params := entity.SetExceptionBreakpointRequest{}
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToRemoveRequest maps the parameters of the remove methods.
func RequestToRemoveRequest(req jsonrpc2.Request) (*entity.RemoveRequest, error) {
	params := entity.RemoveRequest{}
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToStepRequest maps the parameters of debug/step.
func RequestToStepRequest(req jsonrpc2.Request) (*entity.StepRequest, error) {
	params := entity.StepRequest{}
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToResumeRequest maps the parameters of debug/resume. Absent params resume every thread.
func RequestToResumeRequest(req jsonrpc2.Request) (*entity.ResumeRequest, error) {
	params := entity.ResumeRequest{}
	if len(req.Params()) == 0 {
		return &params, nil
	}
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToInspectRequest maps the parameters of debug/inspect.
func RequestToInspectRequest(req jsonrpc2.Request) (*entity.InspectRequest, error) {
	params := entity.InspectRequest{}
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToEvaluateRequest maps the parameters of debug/evaluate.
func RequestToEvaluateRequest(req jsonrpc2.Request) (*entity.EvaluateRequest, error) {
	params := entity.EvaluateRequest{}
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}
