package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	golog "log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ei-projects/prefixcode/pkg/analysis"
	"github.com/ei-projects/prefixcode/pkg/bitpack"
	"github.com/ei-projects/prefixcode/pkg/prefixcode"
	"github.com/spf13/cobra"
)

const maxRequestSize = 8 << 20

var (
	serverHttpAddr   = "127.0.0.1:8080"
	serverHttpPrefix = "/"
)

func newServeCmd() *cobra.Command {
	var serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve analysis and coding over HTTP as JSON",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverHttpAddr, _ = cmd.Flags().GetString("addr")
			serverHttpPrefix, _ = cmd.Flags().GetString("http-prefix")
			return serverMainLoop()
		},
	}
	serveCmd.Flags().String("addr", serverHttpAddr, "Set http server address")
	serveCmd.Flags().String("http-prefix", serverHttpPrefix, "Prefix for http endpoints")
	return serveCmd
}

// coderRequest is the body of every endpoint. Text is the source the code is
// built from; Message and Bits are only used by encode and decode.
type coderRequest struct {
	Text     string `json:"text"`
	Alphabet string `json:"alphabet"`
	Symbols  string `json:"symbols"`
	Method   string `json:"method"`
	Message  string `json:"message"`
	Bits     string `json:"bits"`
}

type encodeResponse struct {
	Bits    string `json:"bits"`
	Dropped string `json:"dropped,omitempty"`
}

type decodeResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }

func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{err}
}

func (req *coderRequest) analyze() (*analysis.Result, error) {
	if req.Alphabet == "" {
		req.Alphabet = analysis.Russian.Name()
	}
	alphabet, err := resolveAlphabet(req.Alphabet, req.Symbols)
	if err != nil {
		return nil, badRequest(err)
	}
	res, err := analysis.AnalyzeAlphabet(req.Text, alphabet)
	if err != nil {
		return nil, badRequest(err)
	}
	return res, nil
}

func (req *coderRequest) table() (*analysis.Result, *prefixcode.CodeTable, error) {
	res, err := req.analyze()
	if err != nil {
		return nil, nil, err
	}
	if req.Method == "" {
		req.Method = methodHuffman
	}
	table, err := buildTable(req.Method, res.Symbols)
	if err != nil {
		return nil, nil, badRequest(err)
	}
	return res, table, nil
}

func handleAnalyze(req *coderRequest) (interface{}, error) {
	res, err := req.analyze()
	if err != nil {
		return nil, err
	}
	return newAnalysisReport(res), nil
}

func handleCode(req *coderRequest) (interface{}, error) {
	res, table, err := req.table()
	if err != nil {
		return nil, err
	}
	return newCodeReport(req.Method, table, res.Entropy), nil
}

func handleEncode(req *coderRequest) (interface{}, error) {
	_, table, err := req.table()
	if err != nil {
		return nil, err
	}
	return &encodeResponse{
		Bits:    prefixcode.Encode(req.Message, table),
		Dropped: string(missingSymbols(req.Message, table)),
	}, nil
}

func handleDecode(req *coderRequest) (interface{}, error) {
	if err := bitpack.Validate(req.Bits); err != nil {
		return nil, badRequest(err)
	}
	_, table, err := req.table()
	if err != nil {
		return nil, err
	}
	return &decodeResponse{Message: prefixcode.Decode(req.Bits, table)}, nil
}

func writeResponse(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("Failed to convert response to JSON: %s", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(data); err != nil {
		log.Errorf("Failed write HTTP response: %s", err)
	}
}

func coderHandler(name string, f func(*coderRequest) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, httpReq *http.Request) {
		if httpReq.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeResponse(w, http.StatusMethodNotAllowed, &errorResponse{"only POST is allowed"})
			return
		}

		var req coderRequest
		decoder := json.NewDecoder(http.MaxBytesReader(w, httpReq.Body, maxRequestSize))
		if err := decoder.Decode(&req); err != nil {
			writeResponse(w, http.StatusBadRequest, &errorResponse{fmt.Sprintf("invalid request: %s", err)})
			return
		}

		startTime := time.Now()
		resp, err := f(&req)
		if err != nil {
			var reqErr *requestError
			status := http.StatusInternalServerError
			if errors.As(err, &reqErr) {
				status = http.StatusBadRequest
			}
			log.Warnf("%s request from %s failed: %s", name, httpReq.RemoteAddr, err)
			writeResponse(w, status, &errorResponse{err.Error()})
			return
		}
		log.Debugf("%s request from %s served in %s", name, httpReq.RemoteAddr, time.Since(startTime))
		writeResponse(w, http.StatusOK, resp)
	}
}

func newHandler(prefix string) http.Handler {
	handler := http.NewServeMux()
	handler.HandleFunc(prefix+"analyze", coderHandler("analyze", handleAnalyze))
	handler.HandleFunc(prefix+"code", coderHandler("code", handleCode))
	handler.HandleFunc(prefix+"encode", coderHandler("encode", handleEncode))
	handler.HandleFunc(prefix+"decode", coderHandler("decode", handleDecode))
	return handler
}

// serveHTTP runs the server until ctx is cancelled, then shuts it down.
func serveHTTP(ctx context.Context) error {
	logWriter := log.Writer()
	defer logWriter.Close()
	server := http.Server{
		Addr:              serverHttpAddr,
		ErrorLog:          golog.New(logWriter, "", 0),
		Handler:           newHandler(serverHttpPrefix),
		ReadHeaderTimeout: 10 * time.Second,
	}

	doneChan := make(chan error, 1)
	go func() {
		log.Infof("Listening on http:%s%s", server.Addr, serverHttpPrefix)
		doneChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("Server is stopping...")
		server.Shutdown(context.Background())
		return ctx.Err()
	case err := <-doneChan:
		return err
	}
}

func serverMainLoop() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := serveHTTP(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("Server stopped")
		return nil
	}
	return fmt.Errorf("http server failed: %w", err)
}
