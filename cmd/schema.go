package cmd

import (
	"encoding/json"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytfetch-cli/ytfetch/fetch"
	"github.com/ytfetch-cli/ytfetch/server"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("error", "e", false, "Generate the JSON Schema of error responses")
}

// schemaCmd prints JSON schemas of the HTTP API bodies.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for the HTTP API responses",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("error")):
			schema = reflector.Reflect(&server.ErrorBody{})
		default:
			schema = reflector.Reflect(&fetch.InfoResponse{})
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
