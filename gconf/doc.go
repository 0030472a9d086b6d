/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps a single configuration entity under the "_c:<pkg>"
key. It is loaded from the genesis "conf" section and may later be patched
by its owner through the UpdateConfigurationHandler.
*/
package gconf
