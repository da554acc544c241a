package runtime

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"cvm/env"
	"cvm/types"
)

// Stdout is where db_opreg/db_optype write. Tests redirect it to a
// buffer; cmd/cvm leaves it pointed at the process's real stdout.
var Stdout io.Writer = os.Stdout

// DumpRegisters implements "db_opreg": one "[data: <HEX>]" line per
// dynamic register of local, in index order.
func DumpRegisters(local *env.Environment) {
	for i := 0; i < len(local.Registers.Dynamic); i++ {
		d := local.Registers.GetDynamic(i)
		fmt.Fprintf(Stdout, "[data: %s]\n", strings.ToUpper(hex.EncodeToString(d.Data)))
	}
}

// DumpTypes implements "db_optype": one "[type: <name>]" line per
// dynamic register of local, naming the registry entry backing its
// currently-held TypeIndex ("null" when untyped).
func DumpTypes(local *env.Environment) {
	for i := 0; i < len(local.Registers.Dynamic); i++ {
		d := local.Registers.GetDynamic(i)
		name := "null"
		if d.Type != types.NullType {
			name = local.Registry.At(d.Type).Name
		}
		fmt.Fprintf(Stdout, "[type: %s]\n", name)
	}
}
