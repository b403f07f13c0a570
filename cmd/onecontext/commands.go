package main

import (
	"context"
	"flag"
	"strconv"
	"strings"

	onecontext "github.com/onecontext/onecontext-go"
	"github.com/onecontext/onecontext-go/octypes"
)

type execFunc func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error)

type command struct {
	name    string
	args    string
	summary string
	setup   func(fs *flag.FlagSet) execFunc
}

// usageError reports bad command-line input; run prints the command usage for it.
type usageError string

func (e usageError) Error() string { return string(e) }

var commands = index(
	command{
		name: "context create", args: "<name>", summary: "create a context",
		setup: func(*flag.FlagSet) execFunc {
			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				name, err := oneArg(args, "context name")
				if err != nil {
					return nil, err
				}
				return c.CreateContext(ctx, octypes.CreateContextInput{ContextName: name})
			}
		},
	},
	command{
		name: "context delete", args: "<name>", summary: "delete a context and its files",
		setup: func(*flag.FlagSet) execFunc {
			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				name, err := oneArg(args, "context name")
				if err != nil {
					return nil, err
				}
				return c.DeleteContext(ctx, octypes.DeleteContextInput{ContextName: name})
			}
		},
	},
	command{
		name: "context list", summary: "list contexts",
		setup: func(*flag.FlagSet) execFunc {
			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				if len(args) != 0 {
					return nil, usageError("context list takes no arguments")
				}
				return c.ListContexts(ctx)
			}
		},
	},
	command{
		name: "search", args: "<query>", summary: "hybrid semantic and full-text search",
		setup: func(fs *flag.FlagSet) execFunc {
			contextName := fs.String("context", "", "context to search (required)")
			filter := fs.String("filter", "", "metadata filter as a JSON object")
			var topK optInt
			var semantic, fullText optFloat
			fs.Var(&topK, "top-k", "maximum number of results")
			fs.Var(&semantic, "semantic-weight", "semantic ranking weight in [0,1]")
			fs.Var(&fullText, "fulltext-weight", "full-text ranking weight in [0,1]")
			rrfK := fs.Int("rrf-k", 0, "reciprocal rank fusion constant (default 60)")
			embeddings := fs.Bool("embeddings", false, "include chunk embeddings")

			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				query := strings.Join(args, " ")
				if query == "" {
					return nil, usageError("search needs a query")
				}
				filters, err := parseJSONObject("filter", *filter)
				if err != nil {
					return nil, err
				}
				return c.Search(ctx, octypes.SearchInput{
					Query:            query,
					ContextName:      *contextName,
					MetadataFilters:  filters,
					TopK:             topK.v,
					SemanticWeight:   semantic.v,
					FullTextWeight:   fullText.v,
					RRFK:             *rrfK,
					IncludeEmbedding: *embeddings,
				})
			}
		},
	},
	command{
		name: "chunks", summary: "retrieve chunks by metadata filter",
		setup: func(fs *flag.FlagSet) execFunc {
			contextName := fs.String("context", "", "context to read (required)")
			filter := fs.String("filter", "", "metadata filter as a JSON object")
			var limit optInt
			fs.Var(&limit, "limit", "maximum number of chunks")
			embeddings := fs.Bool("embeddings", false, "include chunk embeddings")

			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				if len(args) != 0 {
					return nil, usageError("chunks takes no arguments")
				}
				filters, err := parseJSONObject("filter", *filter)
				if err != nil {
					return nil, err
				}
				return c.GetChunks(ctx, octypes.GetChunksInput{
					ContextName:      *contextName,
					MetadataFilters:  filters,
					Limit:            limit.v,
					IncludeEmbedding: *embeddings,
				})
			}
		},
	},
	command{
		name: "files list", summary: "list files in a context",
		setup: func(fs *flag.FlagSet) execFunc {
			contextName := fs.String("context", "", "context to list (required)")
			skip := fs.Int("skip", 0, "number of files to skip")
			limit := fs.Int("limit", 0, "page size (default 10)")
			sortBy := fs.String("sort", "", "sort key (default date_created)")
			filter := fs.String("filter", "", "metadata filter as a JSON object")

			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				if len(args) != 0 {
					return nil, usageError("files list takes no arguments")
				}
				filters, err := parseJSONObject("filter", *filter)
				if err != nil {
					return nil, err
				}
				return c.ListFiles(ctx, octypes.ListFilesInput{
					ContextName:     *contextName,
					Skip:            *skip,
					Limit:           *limit,
					Sort:            *sortBy,
					MetadataFilters: filters,
				})
			}
		},
	},
	command{
		name: "files delete", args: "<file-id>", summary: "delete a file",
		setup: func(*flag.FlagSet) execFunc {
			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				id, err := oneArg(args, "file id")
				if err != nil {
					return nil, err
				}
				return c.DeleteFile(ctx, octypes.DeleteFileInput{FileID: id})
			}
		},
	},
	command{
		name: "files download", args: "<file-id>", summary: "get a download URL for a file",
		setup: func(*flag.FlagSet) execFunc {
			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				id, err := oneArg(args, "file id")
				if err != nil {
					return nil, err
				}
				return c.GetDownloadURL(ctx, octypes.DownloadURLInput{FileID: id})
			}
		},
	},
	command{
		name: "upload files", args: "<file>...", summary: "upload files as one batch",
		setup: func(fs *flag.FlagSet) execFunc {
			contextName, metadata, maxChunk := uploadFlags(fs)

			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				if len(args) == 0 {
					return nil, usageError("upload files needs at least one file")
				}
				meta, err := parseJSONObject("metadata", *metadata)
				if err != nil {
					return nil, err
				}
				files := make([]octypes.File, 0, len(args))
				for _, p := range args {
					files = append(files, octypes.PathFile(p))
				}
				return c.UploadFiles(ctx, octypes.UploadFilesInput{
					Files:        files,
					ContextName:  *contextName,
					MetadataJSON: meta,
					MaxChunkSize: *maxChunk,
				})
			}
		},
	},
	command{
		name: "upload dir", args: "<directory>", summary: "upload every .txt .pdf .docx .doc file below a directory",
		setup: func(fs *flag.FlagSet) execFunc {
			contextName, metadata, maxChunk := uploadFlags(fs)
			var exclude stringList
			fs.Var(&exclude, "exclude", "skip matching paths; repeatable (e.g. drafts/ or old-*.pdf)")

			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				dir, err := oneArg(args, "directory")
				if err != nil {
					return nil, err
				}
				meta, err := parseJSONObject("metadata", *metadata)
				if err != nil {
					return nil, err
				}
				return c.UploadDirectory(ctx, octypes.UploadDirectoryInput{
					Directory:    dir,
					ContextName:  *contextName,
					MetadataJSON: meta,
					MaxChunkSize: *maxChunk,
					Exclude:      exclude,
				})
			}
		},
	},
	command{
		name: "set-openai-key", args: "<key>", summary: "store an OpenAI API key on the account",
		setup: func(*flag.FlagSet) execFunc {
			return func(ctx context.Context, c *onecontext.Client, args []string) (*octypes.Response, error) {
				key, err := oneArg(args, "key")
				if err != nil {
					return nil, err
				}
				return c.SetOpenAIKey(ctx, octypes.SetOpenAIKeyInput{OpenAIAPIKey: key})
			}
		},
	},
)

func index(cmds ...command) map[string]command {
	m := make(map[string]command, len(cmds))
	for _, c := range cmds {
		m[c.name] = c
	}
	return m
}

func uploadFlags(fs *flag.FlagSet) (contextName, metadata *string, maxChunk *int) {
	contextName = fs.String("context", "", "destination context (required)")
	metadata = fs.String("metadata", "", "metadata attached to every file, as a JSON object")
	maxChunk = fs.Int("max-chunk-size", 0, "maximum chunk size (default 600)")
	return contextName, metadata, maxChunk
}

func oneArg(args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", usageError("expected one argument: " + what)
	}
	return args[0], nil
}

// optInt is an int flag that stays nil unless set.
type optInt struct{ v *int }

func (o *optInt) String() string {
	if o.v == nil {
		return ""
	}
	return strconv.Itoa(*o.v)
}

func (o *optInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	o.v = &n
	return nil
}

// optFloat is a float flag that stays nil unless set.
type optFloat struct{ v *float64 }

func (o *optFloat) String() string {
	if o.v == nil {
		return ""
	}
	return strconv.FormatFloat(*o.v, 'g', -1, 64)
}

func (o *optFloat) Set(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	o.v = &f
	return nil
}

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}
