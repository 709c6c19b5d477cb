// Package rewire adds rules for an extra stylesheet type to a bundler's
// module-rule tree.
//
// A [Transform] finds the generic style rule, builds two variants of it for
// the new file type (a global one, and one with locally-scoped class names
// for files under the include scope), extends both with the new loader, and
// places them ahead of the catch-all file rule, which is told to exclude the
// new type.
//
// [Transform.Apply] never modifies the tree it is given. It works on a deep
// copy and only returns it once every step has succeeded.
package rewire
