/*
Package x contains the extensions of the bounty chain.

Extensions implement common functionality (Handler, Decorator, etc.) and
are combined together to construct an application. This package holds the
authentication helpers shared by all of them.
*/
package x
