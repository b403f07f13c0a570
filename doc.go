// Package onecontext provides a client for the OneContext document-context service.
//
// A context is a named, server-side collection of documents. Files uploaded
// to a context are split into chunks and embedded by the service, and can
// then be retrieved by metadata filters or by hybrid semantic and full-text
// search.
//
// Basic usage:
//
//	client, err := onecontext.New(os.Getenv("ONECONTEXT_API_KEY"),
//	    onecontext.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	resp, err := client.UploadDirectory(ctx, octypes.UploadDirectoryInput{
//	    Directory:   "./docs",
//	    ContextName: "handbook",
//	})
//
// Every operation validates its input before sending anything and returns the
// service's response for any HTTP status. Errors are returned only for invalid
// input, network failures, and upload batches in which no file could be sent.
// Use the helpers in the errors package to classify them.
package onecontext
