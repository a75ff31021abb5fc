// Command arbor inspects and converts scene documents.
//
//	arbor dump level1.json           print the assembled node tree
//	arbor dump --mode render lvl.bin print it with renderer nodes attached
//	arbor encode level1.json         write level1.bin next to the input
//	arbor version                    print the document format version
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("arbor failed")
		os.Exit(1)
	}
}
