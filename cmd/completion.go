package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_gearstick() {
    local cur prev words cword
    _init_completion || return

    local commands="init add note ls show rename fav unfav rm sort status history diff restore compact help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        add)
            COMPREPLY=($(compgen -W "-name -username -url -favorite -generate -vault -config" -- "$cur"))
            ;;
        note)
            COMPREPLY=($(compgen -W "-name -favorite -vault -config" -- "$cur"))
            ;;
        ls)
            COMPREPLY=($(compgen -W "-sort -q -vault -config" -- "$cur"))
            ;;
        show|rename|fav|unfav|rm)
            if [[ "$cur" == -* ]]; then
                local flags="-vault -config"
                [[ "$cmd" == show ]] && flags="-reveal $flags"
                COMPREPLY=($(compgen -W "$flags" -- "$cur"))
            else
                local ids
                ids=$(gearstick ls -q 2>/dev/null)
                COMPREPLY=($(compgen -W "$ids" -- "$cur"))
            fi
            ;;
        restore)
            COMPREPLY=($(compgen -W "-force -vault -config" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _gearstick gearstick
`

const zshCompletion = `#compdef gearstick

_gearstick() {
    local -a commands
    commands=(
        'init:Create an empty vault'
        'add:Add a credential'
        'note:Add a note'
        'ls:List records'
        'show:Show a record'
        'rename:Rename a record'
        'fav:Mark records as favorite'
        'unfav:Clear the favorite flag'
        'rm:Remove records'
        'sort:Sort records favorites first'
        'status:Show vault status'
        'history:List snapshots'
        'diff:Compare the vault with a snapshot'
        'restore:Restore a snapshot'
        'compact:Compact the history database'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'gearstick commands' commands
            ;;
        args)
            case "${words[2]}" in
                add)
                    _arguments \
                        '-name[Display name]' \
                        '-username[Account username]' \
                        '-url[Site URL]' \
                        '-favorite[Mark as favorite]' \
                        '-generate[Generate a password of this length]'
                    ;;
                show)
                    _arguments \
                        '-reveal[Print the password in clear text]' \
                        '*:record id:_gearstick_ids'
                    ;;
                rename|fav|unfav|rm)
                    _arguments '*:record id:_gearstick_ids'
                    ;;
                restore)
                    _arguments '-force[Do not ask for confirmation]'
                    ;;
                help)
                    _describe -t commands 'gearstick commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_gearstick_ids() {
    local -a ids
    ids=(${(f)"$(gearstick ls -q 2>/dev/null)"})
    _describe -t ids 'record ids' ids
}

_gearstick "$@"
`

const fishCompletion = `# gearstick fish completions

set -l commands init add note ls show rename fav unfav rm sort status history diff restore compact help completion

complete -c gearstick -f

# Commands
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create an empty vault'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a add -d 'Add a credential'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a note -d 'Add a note'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List records'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a show -d 'Show a record'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a rename -d 'Rename a record'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a fav -d 'Mark as favorite'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a unfav -d 'Clear favorite'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove records'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a sort -d 'Sort records'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a history -d 'List snapshots'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare with a snapshot'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a restore -d 'Restore a snapshot'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact history'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c gearstick -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# record ids
complete -c gearstick -n "__fish_seen_subcommand_from show rename fav unfav rm" -a "(gearstick ls -q 2>/dev/null)"

# show flags
complete -c gearstick -n "__fish_seen_subcommand_from show" -o reveal -d 'Print the password'

# add flags
complete -c gearstick -n "__fish_seen_subcommand_from add" -o name -d 'Display name'
complete -c gearstick -n "__fish_seen_subcommand_from add" -o username -d 'Account username'
complete -c gearstick -n "__fish_seen_subcommand_from add" -o url -d 'Site URL'
complete -c gearstick -n "__fish_seen_subcommand_from add" -o favorite -d 'Mark as favorite'
complete -c gearstick -n "__fish_seen_subcommand_from add" -o generate -d 'Generate a password'

# help completions
complete -c gearstick -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c gearstick -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
