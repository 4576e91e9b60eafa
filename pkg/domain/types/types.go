package types

// ServiceName is used in health responses and log attributes.
const ServiceName = "gh-weebhooks"

// Version is overridden at build time via -ldflags.
var Version = "dev"
