package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"dn-damage-calc/internal/calc"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var textHeader = map[string]string{
	"Content-Type": "text/plain; charset=utf-8",
}

type handler struct {
	log *zap.Logger
}

// handle evaluates a {build, skill} body and answers with both sides and
// their difference. ?format=browser reads the browser storage layout and
// ?text=1 answers with the plain-text report.
func (h *handler) handle(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	if event.RequestContext.HTTP.Method != "" && event.RequestContext.HTTP.Method != http.MethodPost {
		return errResp(http.StatusMethodNotAllowed, "POST only")
	}
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}
	if body == "" {
		return errResp(http.StatusBadRequest, "missing body")
	}

	format := calc.FormatJSON
	if event.QueryStringParameters["format"] == string(calc.FormatBrowser) {
		format = calc.FormatBrowser
	}
	snap, err := calc.DecodeSnapshot([]byte(body), format)
	if err != nil {
		h.log.Info("rejected request", zap.String("request_id", event.RequestContext.RequestID), zap.Error(err))
		return errResp(http.StatusBadRequest, err.Error())
	}

	cmp := calc.Compare(snap.Build, snap.Skill)
	if event.QueryStringParameters["text"] != "" {
		return events.LambdaFunctionURLResponse{
			StatusCode: http.StatusOK, Headers: textHeader, Body: calc.FormatComparison(cmp, snap.Skill),
		}, nil
	}
	respJSON, err := json.Marshal(cmp)
	if err != nil {
		h.log.Error("encode response", zap.Error(err))
		return errResp(http.StatusInternalServerError, "internal error")
	}
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()
	h := &handler{log: log}
	lambda.Start(h.handle)
}
