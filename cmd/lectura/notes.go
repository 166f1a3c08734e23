package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectura/server/internal/chat"
	"github.com/lectura/server/internal/notes"
)

func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes <image>...",
		Short: "Transcribe blackboard photos into a compiled LaTeX document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := chat.New(ctx, appCfg.Chat)
			if err != nil {
				return err
			}
			if !client.Available() {
				return fmt.Errorf("notes transcription requires GEMINI_API_KEY")
			}

			pipeline := notes.NewPipeline(client, appCfg.Notes)
			res, err := pipeline.Process(ctx, args)
			if err != nil {
				return err
			}

			fmt.Printf("LaTeX source: %s\n", res.TexPath)
			switch {
			case res.PDFPath != "":
				fmt.Printf("PDF: %s\n", res.PDFPath)
			case res.CompileError != "":
				fmt.Printf("PDF compilation failed:\n%s\n", res.CompileError)
			default:
				fmt.Println("No TeX toolchain found; PDF generation skipped.")
			}
			return nil
		},
	}
	return cmd
}
