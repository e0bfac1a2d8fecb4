package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lexscan/internal/metrics"
	"github.com/ppiankov/lexscan/internal/server"
	"github.com/ppiankov/lexscan/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Serve exposes the pipeline as a JSON API:

  GET  /health
  GET  /metrics       Prometheus metrics
  POST /v1/chunks     {"text": "...", "method": "words", "size": 200, "overlap": 20}
  POST /v1/keywords   {"text": "...", "min_frequency": 2}
  POST /v1/summary    {"text": "...", "type": "extractive", "length": "medium"}
  POST /v1/analyze    {"text": "...", "chunking": {...}, "keywords": {...}, "summary": {...}}

Example:
  lexscan serve --addr :8080
  lexscan serve --ner --provider ollama --model llama3.1`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Bool("ner", false, "recognize named entities with the LLM provider")
	serveCmd.Flags().Bool("abstractive", false, "enable abstractive summaries with the LLM provider")
	serveCmd.Flags().String("provider", "", "LLM provider (openai, anthropic, ollama, gemini)")
	serveCmd.Flags().String("model", "", "LLM model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, a, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	metrics.Register()

	limiter := worker.NewLimiter(a.cfg.Server.RequestsPerSecond, a.cfg.Server.Burst)
	srv := server.New(a.pipeline, a.cfg.Server, limiter, a.logger)

	fmt.Fprintf(os.Stderr, "✓ Listening on %s\n", a.cfg.Server.Addr)
	return srv.ListenAndServe(ctx)
}
