// ABOUTME: info command
// ABOUTME: Prints an audio file's format without opening an output device
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/justinhj/soundexample/pkg/audio/decode"
	"github.com/spf13/cobra"
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show the audio format of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stream, err := decode.Open(args[0])
			if err != nil {
				return err
			}
			defer stream.Close()

			f := stream.Format
			frames := "unknown"
			if stream.Frames >= 0 {
				frames = fmt.Sprintf("%d", stream.Frames)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "File:\t%s\n", args[0])
			fmt.Fprintf(w, "Codec:\t%s\n", f.Codec)
			fmt.Fprintf(w, "Encoding:\t%s\n", f.Encoding())
			fmt.Fprintf(w, "Sample rate:\t%d Hz\n", f.SampleRate)
			fmt.Fprintf(w, "Sample size:\t%d bits\n", f.BitDepth)
			fmt.Fprintf(w, "Channels:\t%d\n", f.Channels)
			fmt.Fprintf(w, "Frame size:\t%d bytes\n", f.FrameSize())
			fmt.Fprintf(w, "Frame rate:\t%d frames/s\n", f.SampleRate)
			fmt.Fprintf(w, "Big endian:\t%t\n", f.BigEndian)
			fmt.Fprintf(w, "Frames:\t%s\n", frames)
			fmt.Fprintf(w, "Duration:\t%s\n", stream.Duration())
			return w.Flush()
		},
	}
}
