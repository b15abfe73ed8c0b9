// Package configfile reads raw configuration data from disk.
//
// A config file's format is chosen by its file name: JSON with comment
// support, YAML, a script evaluated by an embedded interpreter, or the
// eslintConfig member of a package.json manifest. Loaders return the raw
// configuration as a nested map; they perform no validation or merging.
package configfile
