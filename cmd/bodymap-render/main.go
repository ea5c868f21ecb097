package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fitglue/bodymap/pkg/bodymap"
	"github.com/fitglue/bodymap/pkg/domain/file_generators"
	httputil "github.com/fitglue/bodymap/pkg/infrastructure/http"
	"github.com/fitglue/bodymap/pkg/types"
)

func main() {
	inputPath := flag.String("input", "", "Path to a YAML or JSON render request (stdin when empty)")
	outputPath := flag.String("output", "", "Output file (stdout when empty)")
	formatName := flag.String("format", "", "Output format: svg, png or webp (defaults to the output extension, then svg)")
	apiURL := flag.String("api", "", "Render remotely against a bodymap API base URL")
	flag.Parse()

	if err := run(*inputPath, *outputPath, *formatName, *apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "bodymap-render: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath, formatName, apiURL string) error {
	var (
		data []byte
		err  error
	)
	if inputPath == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inputPath)
	}
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	req, err := loadRequest(data)
	if err != nil {
		return err
	}

	if formatName == "" && outputPath != "" {
		formatName = strings.TrimPrefix(filepath.Ext(outputPath), ".")
	}
	format, err := file_generators.ParseFormat(formatName)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if apiURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err = renderRemote(ctx, http.DefaultClient, apiURL, req, format, &out)
	} else {
		err = renderLocal(req, format, &out)
	}
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = os.Stdout.Write(out.Bytes())
		return err
	}
	return os.WriteFile(outputPath, out.Bytes(), 0o644)
}

// loadRequest decodes a render request. JSON is valid YAML, so one decoder
// covers both.
func loadRequest(data []byte) (*types.RenderRequest, error) {
	var req types.RenderRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return &req, nil
}

func renderLocal(req *types.RenderRequest, format file_generators.Format, w io.Writer) error {
	renderer := &bodymap.Renderer{}
	rendered, err := renderer.Render(req)
	if err != nil {
		return err
	}
	return renderer.Encode(w, rendered, format)
}

func renderRemote(ctx context.Context, client *http.Client, baseURL string, req *types.RenderRequest, format file_generators.Format, w io.Writer) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	url := strings.TrimSuffix(baseURL, "/") + "/v1/render?format=" + string(format)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("render request: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.ParseErrorResponse(resp); err != nil {
		return err
	}
	_, err = io.Copy(w, resp.Body)
	return err
}
