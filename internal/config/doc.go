// Package config holds crawl configuration for seolens.
//
// Configuration comes from three layers, lowest priority first:
// built-in defaults, the optional .seolens YAML file (with per-site
// overrides), and CLI flags. The resulting Config struct is passed
// through the application by dependency injection; there is no global
// configuration state.
package config
