// Package gen provides the emission engine shared by every apigen backend.
//
// A backend turns a validated schema.API into the text of one or two files
// (a header and/or a source) of its target language. It never builds strings
// with manual indentation: it emits lines into a Context and opens nested
// regions with PushBlock/PopBlock, which keeps openers and closers paired and
// indentation consistent.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	API document (api.json / api.yaml)
//	        ↓
//	   compiler/load (decode + schema.NewAPI)
//	        ↓
//	   schema.API (validated model, registry, usage index)
//	        ↓
//	   Generator.Generate (one backend per target language)
//	        ↓
//	   Context (header and/or source lines)
//	        ↓
//	   Writer (parallel writes, empty outputs skipped)
//
// # Key Types
//
//   - Context: lines of one output file, the block stack and indentation
//   - Block: an open region with its closing lines and callbacks
//   - Generator: the backend contract (Name, Outputs, Comment, Generate)
//   - Config: settings shared by a run (gen version, clock, logger, includes)
//   - Writer: writes finished contexts concurrently
//
// # Blocks
//
// Closing a block runs, in order: its OnPrePop callback, its PrePop lines,
// the indentation decrement, its PostPop lines and its OnPostPop callback.
// Callbacks may push and pop blocks of their own, which is how an extern "C"
// guard emits its #if/#endif pairs on both ends:
//
//	ns := ctx.PushBlock("namespace demo {", gen.Indent(), gen.PostPop("} // namespace demo"))
//	ctx.AddLines("static constexpr int32_t MAX = 10;")
//	if err := ctx.PopBlock(ns); err != nil {
//		return err
//	}
//
// # Error Handling
//
// The package uses sentinel errors with structured error types:
//
//   - ErrEmptyStack, ErrUnexpectedBlock: PopBlock misuse
//   - ErrUnbalanced: open blocks or indentation at Text time
//   - ConfigError (matches ErrMissingConfig): invalid options or paths
//   - GenerationError (matches ErrGenerationFailed): backend and write failures
//
// Example error handling:
//
//	hdr, _, err := gen.Run(cpp.New(), api, "out/api.h", "")
//	if errors.Is(err, gen.ErrMissingConfig) {
//		// a required path or include was not supplied
//	}
package gen
