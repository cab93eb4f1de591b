// Package config provides unified configuration loading for agentchat:
// defaults, overridden by a YAML file, overridden by AGENTCHAT_* environment
// variables, in that order.
package config
