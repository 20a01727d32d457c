package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sir_venger/filedrop_lite/pkg/chunkplan"
	"github.com/sir_venger/filedrop_lite/pkg/uploadclient"
)

// main загружает один файл через REST API и печатает ссылку на скачивание.
func main() {
	server := flag.String("server", "http://localhost:8080", "base URL of the REST service")
	chunkSize := flag.Int64("chunk", chunkplan.DefaultChunkSize, "chunk size in bytes")
	concurrency := flag.Int("concurrency", 4, "parallel part uploads")
	quiet := flag.Bool("quiet", false, "disable progress output")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var progress io.Writer
	if !*quiet {
		progress = os.Stdout
	}

	client := uploadclient.New(uploadclient.Config{
		BaseURL:     *server,
		ChunkSize:   *chunkSize,
		Concurrency: *concurrency,
		Progress:    progress,
	})

	res, err := client.UploadFile(ctx, flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "upload failed:", err)
		os.Exit(1)
	}

	fmt.Printf("uploaded %d bytes in %d part(s)\n", res.Size, res.Parts)
	fmt.Println("download:", client.DownloadURL(res.DownloadID))
	fmt.Println("info:    ", client.FileInfoURL(res.DownloadID))
}
