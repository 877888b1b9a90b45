package analysis

// defaultNoisePrefixes is the fixed taxonomy of framework and well-known
// third-party namespaces excluded from the external-reference report.
// The broad System prefix already covers its children; the carve-outs
// are listed anyway so the exclusion of each family is explicit policy,
// not an accident of prefix ordering.
var defaultNoisePrefixes = []string{
	// Core platform.
	"System",
	"mscorlib",
	"Microsoft.VisualBasic",
	"Microsoft.CSharp",
	"Microsoft.Win32",

	// Explicit carve-outs, still excluded.
	"System.Windows.Forms",
	"System.Drawing",
	"System.Collections",
	"System.Linq",
	"System.Text",
	"System.IO",
	"System.Threading",
	"System.Data",
	"System.ComponentModel",
	"System.Reflection",
	"System.Diagnostics",
	"System.Net",
	"System.Xml",

	// Well-known third-party libraries.
	"Newtonsoft.Json",
	"log4net",
	"NLog",
	"NUnit.Framework",
	"Castle",
	"Autofac",
	"Dapper",
}
